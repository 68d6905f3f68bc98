package curves

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultPointCacheSize is the number of curves a PointCache remembers.
const DefaultPointCacheSize = 64

// PointCache memoises Curve.Points keyed by the (p, a, b) triple.
// It is safe for concurrent use.
type PointCache struct {
	points   *lru.Cache[string, Points]
	requests *prometheus.CounterVec
}

// NewPointCache returns a cache holding the enumerations of up to size
// curves. When reg is not nil, hit and miss counts are exported as
// ecelgamal_points_cache_requests_total{result="hit|miss"}.
func NewPointCache(size int, reg prometheus.Registerer) (*PointCache, error) {
	points, err := lru.New[string, Points](size)
	if err != nil {
		return nil, errors.Wrap(err, "new point cache")
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecelgamal",
		Subsystem: "points",
		Name:      "cache_requests_total",
		Help:      "Point enumeration requests by cache result.",
	}, []string{"result"})

	if reg != nil {
		if err := reg.Register(requests); err != nil {
			are := prometheus.AlreadyRegisteredError{}
			if !errors.As(err, &are) {
				return nil, errors.Wrap(err, "register point cache metrics")
			}
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	return &PointCache{points: points, requests: requests}, nil
}

// Points returns the enumeration of c, computing it on first use.
// The returned slice is a copy and may be modified by the caller.
func (pc *PointCache) Points(c *Curve) Points {
	key := cacheKey(c)
	if points, ok := pc.points.Get(key); ok {
		pc.requests.WithLabelValues("hit").Inc()
		return append(Points(nil), points...)
	}

	pc.requests.WithLabelValues("miss").Inc()
	points := c.Points()
	pc.points.Add(key, points)
	return append(Points(nil), points...)
}

// Len returns the number of cached curves.
func (pc *PointCache) Len() int {
	return pc.points.Len()
}

// Purge drops every cached enumeration.
func (pc *PointCache) Purge() {
	pc.points.Purge()
}

func cacheKey(c *Curve) string {
	return fmt.Sprintf("%s:%s:%s", c.p, c.a, c.b)
}
