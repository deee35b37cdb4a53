package directory

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"ninja-fellowship/internal/domain"
	"ninja-fellowship/internal/httpx"
)

// Loader fetches the employee list from the proxy exactly once. A failed
// load is logged and leaves the model's employees unset for good.
type Loader struct {
	ProxyURL string
	HTTP     *http.Client
	Logger   logrus.FieldLogger

	once sync.Once
	err  error
}

func NewLoader(proxyURL string, logger logrus.FieldLogger) *Loader {
	return &Loader{
		ProxyURL: proxyURL,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Logger:   logger,
	}
}

// Load runs the fetch on first call only and stores the result in m.
// Later calls return the first call's error without touching the network.
func (l *Loader) Load(ctx context.Context, m *Model) error {
	l.once.Do(func() {
		emps, err := l.fetch(ctx)
		if err != nil {
			l.err = err
			if l.Logger != nil {
				l.Logger.WithError(err).WithField("proxy-url", l.ProxyURL).Warn("employee list not loaded")
			}
			return
		}
		m.SetEmployees(emps)
	})
	return l.err
}

func (l *Loader) fetch(ctx context.Context) ([]domain.Employee, error) {
	_, body, err := httpx.DoWithRetry(
		ctx,
		l.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, l.ProxyURL, nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept", "application/json")
			return r, nil
		},
		httpx.SingleAttempt(),
	)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	emps, err := domain.DecodeEmployees(body)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	return emps, nil
}
