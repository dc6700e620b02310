package bodhi

// User is a Bodhi (FAS) account
type User struct {
	Name string `json:"name"`
}

// Comment is feedback left on an update
type Comment struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Karma int    `json:"karma"`
	User  User   `json:"user"`
}

// Build is one package build included in an update
type Build struct {
	NVR  string `json:"nvr"`
	Type string `json:"type,omitempty"`
}

// Release identifies the Fedora release an update targets
type Release struct {
	Name string `json:"name"`
}

// Update is a Bodhi update record. Records are read-only once fetched.
type Update struct {
	Alias    string    `json:"alias"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Type     string    `json:"type"`
	URL      string    `json:"url"`
	User     User      `json:"user"`
	Comments []Comment `json:"comments"`
	Builds   []Build   `json:"builds"`
	Release  Release   `json:"release"`
}

// updatesPage is one page of GET /updates/
type updatesPage struct {
	Updates     []Update `json:"updates"`
	Page        int      `json:"page"`
	Pages       int      `json:"pages"`
	RowsPerPage int      `json:"rows_per_page"`
	Total       int      `json:"total"`
}

// errorBody is what Bodhi returns alongside 4xx statuses
type errorBody struct {
	Status string `json:"status"`
	Errors []struct {
		Location    string `json:"location"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"errors"`
}
