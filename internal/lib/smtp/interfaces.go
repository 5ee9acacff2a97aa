// Package smtp отправляет подрядчикам письма о новых заявках.
package smtp

import "io"

// Client покрывает команды SMTP-сессии, нужные для отправки
// одного письма-уведомления.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface устанавливает SMTP-соединение для сервиса отправки.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
