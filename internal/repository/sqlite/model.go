package sqlite

// projectRow mirrors a row of the projects table.
type projectRow struct {
	ID   int64
	Name string
}

// timeIntervalRow mirrors a row of the time_intervals table.
// StopMs is 0 while the interval is running; Registered is 0 or 1.
type timeIntervalRow struct {
	ID         int64
	ProjectID  int64
	StartMs    int64
	StopMs     int64
	Registered int
}
