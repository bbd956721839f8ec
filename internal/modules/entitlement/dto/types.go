package dto

type StatusOutput struct {
	Account   string
	Paid      string
	Tier      string
	AccountID string
	IsPro     bool
}

type RestoreOutput struct {
	Restored bool
	Status   StatusOutput
}
