package service

import (
	"errors"
	"net"
	"strings"
)

// minHostLabels минимальное число меток в хосте: поддомен, домен и зона
const minHostLabels = 3

// ErrMissingHost возвращается, когда у запроса нет заголовка Host
var ErrMissingHost = errors.New("missing host header")

// ErrNoSubdomain возвращается, когда в хосте меньше трех меток
var ErrNoSubdomain = errors.New("no subdomain provided")

// Host разобранный заголовок Host: первая метка и оставшаяся часть домена
type Host struct {
	Subdomain string
	Rest      string
}

// ParseHost выделяет поддомен из значения заголовка Host.
// Порт отбрасывается, остальное делится по точкам как есть: завершающая точка
// дает пустую последнюю метку.
// Используется только первая метка, остальные уровни поддоменов входят в Rest.
func ParseHost(raw string) (Host, error) {
	if raw == "" {
		return Host{}, ErrMissingHost
	}

	hostname := raw
	if h, _, err := net.SplitHostPort(raw); err == nil {
		hostname = h
	}

	labels := strings.Split(hostname, ".")
	if len(labels) < minHostLabels {
		return Host{}, ErrNoSubdomain
	}

	return Host{Subdomain: labels[0], Rest: strings.Join(labels[1:], ".")}, nil
}
