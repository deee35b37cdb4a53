package proxy

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"ninja-fellowship/internal/middleware"
	"ninja-fellowship/internal/providers"
)

const EmployeesPath = "/api/employees"

// EmployeesController serves the employee list straight from the upstream
// directory. Every failure becomes a bare 400.
type EmployeesController struct {
	source providers.EmployeeSource
	logger logrus.FieldLogger
}

func NewEmployeesController(source providers.EmployeeSource, logger logrus.FieldLogger) *EmployeesController {
	return &EmployeesController{source: source, logger: logger}
}

func (c *EmployeesController) Key() string {
	return EmployeesPath
}

func (c *EmployeesController) Register(r *mux.Router) {
	r.HandleFunc(EmployeesPath, c.List).Methods(http.MethodGet)
}

func (c *EmployeesController) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	emps, raw, err := c.source.FetchEmployees(r.Context())
	result := classify(err)
	proxyUpstreamLatency.WithLabelValues(result).Observe(time.Since(start).Seconds())
	proxyRequests.WithLabelValues(result).Inc()

	logger := middleware.UseLogger(r.Context(), c.logger)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"source":          c.source.Name(),
			"result":          result,
			"upstream-status": upstreamStatus(err),
		}).Warn("employee proxy failed")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	logger.WithField("employees", len(emps)).Debug("employee proxy served")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
