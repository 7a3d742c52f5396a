package catalog

// Seed installs the standard CPC deadline types into a memory store. The
// production catalog lives in the database; this set keeps development
// environments and tests aligned with the common cases.
func Seed(store *InMemoryStore) error {
	for _, entry := range DefaultEntries() {
		if err := store.Put(entry); err != nil {
			return err
		}
	}
	return nil
}

// DefaultEntries returns the standard deadline-type definitions.
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:                 "appeal",
			Description:        "Apelação",
			LegalBasis:         "CPC art. 1003 §5",
			BaseDuration:       15,
			CountingMode:       CountBusinessDays,
			StartMethod:        StartNextDay,
			DoublingEligible:   true,
			ColitigantEligible: true,
			RecessSensitive:    true,
			Interruptible:      true,
		},
		{
			ID:                 "response",
			Description:        "Contestação",
			LegalBasis:         "CPC art. 335",
			BaseDuration:       15,
			CountingMode:       CountBusinessDays,
			StartMethod:        StartNextDay,
			DoublingEligible:   true,
			ColitigantEligible: true,
			RecessSensitive:    true,
			Interruptible:      false,
		},
		{
			ID:               "clarification_motion",
			Description:      "Embargos de declaração",
			LegalBasis:       "CPC art. 1023",
			BaseDuration:     5,
			CountingMode:     CountBusinessDays,
			StartMethod:      StartNextDay,
			DoublingEligible: true,
			RecessSensitive:  true,
		},
		{
			ID:           "voluntary_payment",
			Description:  "Pagamento voluntário",
			LegalBasis:   "CPC art. 523",
			BaseDuration: 15,
			CountingMode: CountBusinessDays,
			StartMethod:  StartNextDay,
		},
		{
			ID:           "injunction_compliance",
			Description:  "Cumprimento de liminar",
			LegalBasis:   "decisão judicial",
			BaseDuration: 5,
			CountingMode: CountCalendarDays,
			StartMethod:  StartSameDay,
		},
		{
			ID:               "counter_arguments",
			Description:      "Contrarrazões",
			LegalBasis:       "CPC art. 1010 §1",
			BaseDuration:     15,
			CountingMode:     CountBusinessDays,
			StartMethod:      StartNextBusinessDay,
			DoublingEligible: true,
			RecessSensitive:  true,
		},
	}
}
