package registry

// ActivityRegistry is the catalogue of marketing activities exposed over
// HTTP and as Zeebe job types.
type ActivityRegistry struct {
	Version     string     `json:"version" yaml:"version"`
	LastUpdated string     `json:"lastUpdated" yaml:"lastUpdated"`
	Activities  []Activity `json:"activities" yaml:"activities"`
}

type Activity struct {
	ID                   string   `json:"id" yaml:"id"`
	DisplayName          string   `json:"displayName" yaml:"displayName"`
	Description          string   `json:"description" yaml:"description"`
	Category             string   `json:"category" yaml:"category"`
	Version              string   `json:"version" yaml:"version"`
	TaskType             string   `json:"taskType" yaml:"taskType"`
	Route                string   `json:"route" yaml:"route"`
	ResultKey            string   `json:"resultKey" yaml:"resultKey"`
	ImplementationStatus string   `json:"implementationStatus" yaml:"implementationStatus"`
	ErrorCodes           []string `json:"errorCodes" yaml:"errorCodes"`
	Timeout              string   `json:"timeout" yaml:"timeout"`
	Retries              int      `json:"retries" yaml:"retries"`
	Tags                 []string `json:"tags" yaml:"tags"`
}
