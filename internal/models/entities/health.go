package entities

// ServiceStatus reports the reachability of one backing service.
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services"`
	Uptime   string                   `json:"uptime"`
}
