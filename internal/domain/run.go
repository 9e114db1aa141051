package domain

import "time"

// DispenseOutcome classifies what a single dispense invocation did.
type DispenseOutcome string

const (
	// OutcomeQuoteInserted means a quote block was created for the day.
	OutcomeQuoteInserted DispenseOutcome = "quote_inserted"
	// OutcomeErrorInserted means an error block was created (missing token
	// or fetch failure with an empty cache).
	OutcomeErrorInserted DispenseOutcome = "error_inserted"
	// OutcomeAlreadyDispensed means a quote block already existed today.
	OutcomeAlreadyDispensed DispenseOutcome = "already_dispensed"
	// OutcomeSkipped means nothing was inserted and nothing needed to be:
	// the token is missing but the error was already reported today.
	OutcomeSkipped DispenseOutcome = "skipped"
)

// DispenseRun is an audit record of one dispense invocation.
type DispenseRun struct {
	ID        string          `gorm:"type:text;primaryKey" json:"id"`
	PageUID   string          `gorm:"type:text;not null;index:idx_runs_page" json:"page_uid"`
	Outcome   DispenseOutcome `gorm:"type:text;not null" json:"outcome"`
	BlockUID  string          `gorm:"type:text" json:"block_uid,omitempty"`
	ErrorLog  string          `json:"error_log,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName returns the database table name for DispenseRun.
func (DispenseRun) TableName() string {
	return "dispense_runs"
}
