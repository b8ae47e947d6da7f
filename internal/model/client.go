package model

// Client is a bank-account-like record.  This struct corresponds to a row in
// the `clients` table.  NumCompte is supplied by the caller and never
// changes after creation.
type Client struct {
	NumCompte int64   `json:"numCompte"` // clients.num_compte
	Nom       string  `json:"nom"`       // clients.nom
	Solde     float64 `json:"solde"`     // clients.solde
}

// Balance observations returned in the `obs` field.
const (
	ObsInsufficient = "insuffisant"
	ObsAverage      = "moyen"
	ObsHigh         = "élevé"
)

// Balance band limits; both belong to the middle band.
const (
	LowBalanceLimit  = 1000
	HighBalanceLimit = 5000
)

// Classify maps a balance to its observation.  It is never persisted.
func Classify(solde float64) string {
	if solde < LowBalanceLimit {
		return ObsInsufficient
	}
	if solde <= HighBalanceLimit {
		return ObsAverage
	}
	return ObsHigh
}

// ObservedClient is a Client as returned by the list endpoint.
type ObservedClient struct {
	Client
	Obs string `json:"obs"`
}

// Observe attaches the observation for c's balance.
func Observe(c Client) ObservedClient {
	return ObservedClient{Client: c, Obs: Classify(c.Solde)}
}

// BalanceSummary aggregates solde over every client.  All fields are zero
// when there are no clients.
type BalanceSummary struct {
	Min   float64 `json:"soldeMinimal"`
	Max   float64 `json:"soldeMaximal"`
	Total float64 `json:"soldeTotal"`
}
