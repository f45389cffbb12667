package models

// Params maps a template parameter name to its extracted value
// (string, int or time.Time depending on the extraction rule).
type Params map[string]interface{}

// Row maps a result column name to its value. Column order is carried
// separately in SQLResult.Columns since Go maps are unordered.
type Row map[string]interface{}

type QueryRequest struct {
	QueryText string `json:"query_text" binding:"required"`
	Env       string `json:"env,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type QueryResponse struct {
	Env             string `json:"env"`
	MatchedTemplate string `json:"matched_template"`
	Params          Params `json:"params"`
	RecordCount     int    `json:"record_count"`
	Records         []Row  `json:"records"`
}

type SQLResult struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// SessionContext is the last successful resolution recorded for a session.
type SessionContext struct {
	SessionID    string `json:"session_id"`
	LastTemplate string `json:"last_template"`
	LastParams   Params `json:"last_params"`
}

type QueryHistory struct {
	QueryText string `json:"query_text"`
	Template  string `json:"template"`
	Env       string `json:"env"`
	RowCount  int    `json:"row_count"`
	Timestamp string `json:"timestamp"`
}

type TemplateInfo struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}
