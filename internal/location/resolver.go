package location

import (
	"context"
	"log/slog"
	"net"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/cache"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/config"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/providers/ipapi"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

// GeoProvider resolves a public IP address to a geolocation.
type GeoProvider interface {
	Lookup(ctx context.Context, ip string) (*ipapi.GeolocationResponse, error)
}

// Service resolves a client IP to coordinates. Resolve never fails: any IP
// that cannot be located falls back to the configured default location.
type Service interface {
	Resolve(ctx context.Context, clientIP string) types.Coords
}

type resolverService struct {
	provider GeoProvider
	cache    *cache.Cache[types.Coords]
	defaults types.Coords
	group    singleflight.Group
	logger   *slog.Logger
}

// NewResolver creates a resolver backed by the IP geolocation API.
func NewResolver(cfg config.GeoIPConfig, logger *slog.Logger) Service {
	client := ipapi.NewClient(cfg.BaseURL, cfg.Timeout(), logger)
	return NewResolverWithProvider(cfg, client, logger)
}

// NewResolverWithProvider creates a resolver with a custom geolocation provider.
func NewResolverWithProvider(cfg config.GeoIPConfig, provider GeoProvider, logger *slog.Logger) Service {
	return &resolverService{
		provider: provider,
		cache:    cache.New[types.Coords](cfg.CacheTTL()),
		defaults: types.NewCoords(cfg.DefaultLatitude, cfg.DefaultLongitude),
		logger:   logger.With("component", "location-resolver"),
	}
}

func (s *resolverService) Resolve(ctx context.Context, clientIP string) types.Coords {
	ip := normalizeIP(clientIP)

	if coords, ok := s.cache.Get(ip); ok {
		s.logger.Debug("location cache hit", "ip", ip)
		return coords
	}

	// Local and private addresses carry no usable location. Cache the
	// default so repeated requests from the same address stay cheap.
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		s.logger.Debug("non-routable client IP, using default location", "ip", ip)
		s.cache.Set(ip, s.defaults)
		return s.defaults
	}

	// Collapse concurrent lookups for the same IP into a single upstream call.
	v, _, _ := s.group.Do(ip, func() (interface{}, error) {
		return s.lookup(ctx, ip), nil
	})
	return v.(types.Coords)
}

func (s *resolverService) lookup(ctx context.Context, ip string) types.Coords {
	resp, err := s.provider.Lookup(ctx, ip)
	if err != nil {
		s.logger.Warn("geolocation lookup failed, using default location", "ip", ip, "error", err)
		s.cache.Set(ip, s.defaults)
		return s.defaults
	}
	if resp.Lat == nil || resp.Lon == nil {
		s.logger.Warn("geolocation response missing coordinates, using default location", "ip", ip)
		s.cache.Set(ip, s.defaults)
		return s.defaults
	}

	coords := types.NewCoords(*resp.Lat, *resp.Lon)
	s.cache.Set(ip, coords)
	s.logger.Debug("resolved client location",
		"ip", ip,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)
	return coords
}

// normalizeIP strips the IPv4-mapped IPv6 prefix some proxies report.
func normalizeIP(clientIP string) string {
	return strings.TrimPrefix(strings.TrimSpace(clientIP), "::ffff:")
}
