package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

const countryCacheTTL = 30 * 24 * time.Hour

var ErrLocalAddress = errors.New("local address has no country")

// Resolver finds the country of a client IP via ipinfo, caching the answers in redis.
type Resolver struct {
	mu          sync.Mutex
	client      *ipinfo.Client
	redisClient *redis.Client
}

// NewIpInfoClient creates an ipinfo client; an empty baseURL keeps the ipinfo default.
func NewIpInfoClient(baseURL, token string, httpClient *http.Client) (*ipinfo.Client, error) {
	client := ipinfo.NewClient(httpClient, nil, token)
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse ipinfo base url: %w", err)
		}
		client.BaseURL = u
	}
	return client, nil
}

func NewResolver(client *ipinfo.Client, redisClient *redis.Client) *Resolver {
	return &Resolver{
		client:      client,
		redisClient: redisClient,
	}
}

// RequestCountry resolves the country of the request caller.
func (gr *Resolver) RequestCountry(ctx context.Context, r *http.Request) (string, error) {
	userIp, err := pkg.ReadUserIP(r)
	if err != nil {
		return "", fmt.Errorf("get user ip: %w", err)
	}
	return gr.CountryForIP(ctx, userIp)
}

func (gr *Resolver) CountryForIP(ctx context.Context, userIp string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoip.country")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.ip", userIp))

	if userIp == "localhost" {
		return "", ErrLocalAddress
	}
	ip := net.ParseIP(userIp)
	if ip == nil {
		return "", fmt.Errorf("invalid ip: %s", userIp)
	}
	if ip.IsLoopback() || ip.IsPrivate() {
		return "", ErrLocalAddress
	}

	// signups from the same address usually come in bursts, so serialize the lookups
	// and let the followers hit the cache
	gr.mu.Lock()
	defer gr.mu.Unlock()

	cacheKey := fmt.Sprintf("ip-country::%s", userIp)
	cached, err := gr.redisClient.Get(ctx, cacheKey).Result()
	switch {
	case err == nil && cached != "":
		span.SetAttributes(attribute.Bool("user.ip.from-cache", true))
		return cached, nil
	case err != nil && !errors.Is(err, redis.Nil):
		log.Errorf("failed to get ip country from redis for [%s]: %s", userIp, err)
	}
	span.SetAttributes(attribute.Bool("user.ip.from-cache", false))

	info, err := gr.client.GetIPInfo(ip)
	if err != nil {
		return "", fmt.Errorf("ipinfo lookup: %w", err)
	}

	country := info.CountryName
	if country == "" {
		country = info.Country
	}
	if country == "" {
		return "", fmt.Errorf("no country for ip %s", userIp)
	}

	if err := gr.redisClient.Set(ctx, cacheKey, country, countryCacheTTL).Err(); err != nil {
		log.Errorf("failed to cache ip country in redis for %s: %s", userIp, err)
	}

	return country, nil
}
