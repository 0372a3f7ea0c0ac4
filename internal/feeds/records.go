package feeds

// Raw upstream records. Field names follow the upstream API contract
// (Portuguese keys); timestamps arrive as ISO-8601 strings and are parsed
// during consolidation, not here.

// TerminalRecord is one row of the terminal operator feed. This feed is the
// primary source of truth for vessel identity and berthing schedule.
type TerminalRecord struct {
	VesselID        string `json:"identificadorNavio"`
	TerminalName    string `json:"nomeTerminal"`
	OperationType   string `json:"tipoOperacao"`
	OperationStatus string `json:"statusOperacao"`
	Observations    string `json:"observacoes"`
	PlannedBerthing string `json:"dataPrevistaAtracacao"`
	ActualBerthing  string `json:"dataRealAtracacao"`
}

// AgencyRecord is one row of the maritime agency feed.
type AgencyRecord struct {
	VesselID   string `json:"identificadorNavio"`
	AgencyName string `json:"nomeAgencia"`
}

// PilotageRecord is one row of the pilotage feed. ManeuverType is "entrada"
// for a harbor entry maneuver and "saida" for an exit maneuver.
type PilotageRecord struct {
	VesselID       string `json:"identificadorNavio"`
	RequestedAt    string `json:"dataSolicitacao"`
	ExecutedAt     string `json:"dataExecucao"`
	ManeuverType   string `json:"manobraTipo"`
	IncidentReason string `json:"motivoIntercorrencia"`
}

// AuthorityRecord is one row of the port authority feed. The feed is fetched
// for completeness but no field group currently maps onto the consolidated
// schedule.
type AuthorityRecord struct {
	VesselID string `json:"identificadorNavio"`
}
