package users

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/ipinfo/go/v2/ipinfo"
)

// TimezoneResolver looks up the IANA timezone behind an IP, used when
// a signup comes without one. Nil resolver means the feature is off.
type TimezoneResolver struct {
	client *ipinfo.Client
}

func NewTimezoneResolver(httpClient *http.Client, token string) *TimezoneResolver {
	return &TimezoneResolver{
		client: ipinfo.NewClient(httpClient, nil, token),
	}
}

func (r *TimezoneResolver) TimezoneForIP(ipAddr string) (string, error) {
	if r == nil || r.client == nil {
		return "", errors.New("timezone resolver not configured")
	}

	ip := net.ParseIP(ipAddr)
	if ip == nil {
		return "", fmt.Errorf("ip addr %s is invalid", ipAddr)
	}

	info, err := r.client.GetIPInfo(ip)
	if err != nil {
		return "", fmt.Errorf("get ip info: %w", err)
	}

	return info.Timezone, nil
}
