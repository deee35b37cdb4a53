package proxy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninja-fellowship/internal/domain"
	"ninja-fellowship/internal/providers/hrdirectory"
)

type stubSource struct {
	emps []domain.Employee
	raw  []byte
	err  error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) FetchEmployees(ctx context.Context) ([]domain.Employee, []byte, error) {
	return s.emps, s.raw, s.err
}

func labelsToMap(m *dto.Metric) map[string]string {
	out := map[string]string{}
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}

func requestCount(t *testing.T, result string) float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "directory_proxy_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsToMap(m)["result"] == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func serve(t *testing.T, c *EmployeesController, method string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	c.Register(r)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, EmployeesPath, nil))
	return rr
}

func upstream(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestListReturnsUpstreamBodyVerbatim(t *testing.T) {
	body := "[ {\"email\":\"ann@example.com\",\"name\":\"Ann\",\"office\":\"Lund\",\"extra\":{\"kept\":true}} ,\n{\"email\":\"cy@example.com\",\"name\":\"Cy\",\"office\":null} ]"
	src := hrdirectory.New(upstream(t, http.StatusOK, body), "secret")
	before := requestCount(t, resultOK)

	rr := serve(t, NewEmployeesController(src, logrus.New()), http.MethodGet)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, body, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, before+1, requestCount(t, resultOK))
}

func TestListEmptyDirectory(t *testing.T) {
	src := hrdirectory.New(upstream(t, http.StatusOK, "[]"), "secret")

	rr := serve(t, NewEmployeesController(src, nil), http.MethodGet)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestListUpstreamFailuresBecomeBareBadRequest(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		result string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, resultUpstreamError},
		{"server error", http.StatusInternalServerError, "boom", resultUpstreamError},
		{"not found", http.StatusNotFound, "", resultUpstreamError},
		{"malformed json", http.StatusOK, `[{"email":`, resultDecodeError},
		{"not a list", http.StatusOK, `{"email":"a@example.com"}`, resultDecodeError},
		{"missing name", http.StatusOK, `[{"email":"a@example.com"}]`, resultDecodeError},
		{"missing email", http.StatusOK, `[{"name":"Ann"}]`, resultDecodeError},
		{"wrapped list", http.StatusOK, `{"employees":[]}`, resultDecodeError},
		{"numeric office", http.StatusOK, `[{"email":"a@example.com","name":"A","office":5}]`, resultDecodeError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := hrdirectory.New(upstream(t, tc.status, tc.body), "secret")
			logger, hook := logrustest.NewNullLogger()
			before := requestCount(t, tc.result)

			rr := serve(t, NewEmployeesController(src, logger), http.MethodGet)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, rr.Body.String())
			assert.Equal(t, before+1, requestCount(t, tc.result))

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.WarnLevel, entry.Level)
			assert.Equal(t, tc.result, entry.Data["result"])
		})
	}
}

func TestListLogsUpstreamStatus(t *testing.T) {
	src := hrdirectory.New(upstream(t, http.StatusServiceUnavailable, "down"), "secret")
	logger, hook := logrustest.NewNullLogger()

	rr := serve(t, NewEmployeesController(src, logger), http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, http.StatusServiceUnavailable, hook.LastEntry().Data["upstream-status"])
	assert.Equal(t, "hrdirectory", hook.LastEntry().Data["source"])
}

func TestListNetworkFailure(t *testing.T) {
	src := stubSource{err: errors.New("dial tcp: connection refused")}
	before := requestCount(t, resultUpstreamError)

	rr := serve(t, NewEmployeesController(src, nil), http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, before+1, requestCount(t, resultUpstreamError))
}

func TestListOnlyAnswersGet(t *testing.T) {
	src := stubSource{raw: []byte("[]"), emps: []domain.Employee{}}

	rr := serve(t, NewEmployeesController(src, nil), http.MethodPost)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, resultOK, classify(nil))
	assert.Equal(t, resultDecodeError, classify(&domain.DecodeError{Index: -1, Err: errors.New("eof")}))
	assert.Equal(t, resultUpstreamError, classify(errors.New("timeout")))
}
