package services

import (
	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
)

// NewServiceContainer wires all services from the repository provider.
// Stores are always passed in explicitly; nothing reads ambient globals.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	currency := NewCurrencyService(repos.CurrencyRepo)
	wallet := NewWalletService(repos.CharacterRepo, currency)

	return &portssvc.ServiceContainer{
		Currency:  currency,
		Character: NewCharacterService(repos.CharacterRepo),
		Wallet:    wallet,
		Trade:     NewTradeService(repos.CharacterRepo, repos.TradeRepo, currency, wallet),
	}
}
