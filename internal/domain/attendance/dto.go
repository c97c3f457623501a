package attendance

type DerivedResponse struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	InTime     *string `json:"in_time,omitempty"`  // HH:MM:SS
	OutTime    *string `json:"out_time,omitempty"` // HH:MM:SS
	Status     string  `json:"status"`
}

type MissingCheckinRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
}

type ReconstructResult struct {
	Date       string `json:"date"`
	Processed  int    `json:"processed"`
	WithEvents int    `json:"with_events"`
}
