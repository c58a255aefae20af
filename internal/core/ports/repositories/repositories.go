package repositories

// RepositoryProvider holds instances of all the application repositories.
// It is constructed by the persistence adapter and handed to the service
// container, keeping all stores explicit dependencies rather than globals.
type RepositoryProvider struct {
	CurrencyRepo  CurrencyDefinitionRepositoryFacade
	CharacterRepo CharacterRepositoryFacade
	TradeRepo     TradeRecordRepositoryFacade
}
