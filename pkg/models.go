package pkg

const (
	SummaryURL      = "https://api.covid19api.com/summary"
	GistAPIURL      = "https://api.github.com"
	GistDescription = "COVID-19 Updates"
)

// SummaryEntity mirrors the part of the summary response we read. Pointers let us
// tell a missing field from a zero one.
type SummaryEntity struct {
	Global *struct {
		TotalConfirmed *int64 `json:"TotalConfirmed"`
		TotalRecovered *int64 `json:"TotalRecovered"`
		TotalDeaths    *int64 `json:"TotalDeaths"`
	} `json:"Global"`
}

type GlobalStats struct {
	TotalConfirmed int64
	TotalRecovered int64
	TotalDeaths    int64
}

type GistFile struct {
	Content string `json:"content"`
}

type PublishPayload struct {
	Description string              `json:"description"`
	Files       map[string]GistFile `json:"files"`
}

func NewPublishPayload(fileName, content string) PublishPayload {
	return PublishPayload{
		Description: GistDescription,
		Files:       map[string]GistFile{fileName: {Content: content}},
	}
}

type Credentials struct {
	Username string
	Token    string
}
