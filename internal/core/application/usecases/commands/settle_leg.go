package commands

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/core/domain/services"
)

// settleLeg settles one order leg inside the caller's open unit of work:
// loads the payee, locks the ledger accounts involved, runs the settlement
// engine, and persists the settlement records, counters, and ledger entries.
// The caller commits.
func settleLeg(
	ctx context.Context,
	uow UoW,
	engine services.SettlementEngine,
	o *order.Order,
	leg settlement.Leg,
	payeeID kernel.UUID,
	now time.Time,
) error {
	actorRepo := uow.ActorRepository()
	ledgerRepo := uow.LedgerRepository()

	payee, err := actorRepo.Get(ctx, payeeID)
	if err != nil {
		return err
	}

	payeeAccount, err := ledgerRepo.GetAccountForUpdate(ctx, payeeID)
	if err != nil {
		return err
	}

	client, err := actorRepo.Get(ctx, o.Client())
	if err != nil {
		return err
	}

	var referral *services.ReferralParty
	if refID := client.Referrer(); refID != nil {
		referrer, err := actorRepo.Get(ctx, *refID)
		if err != nil {
			return err
		}
		if referrer.IsWorker() {
			referrerAccount, err := ledgerRepo.GetAccountForUpdate(ctx, referrer.ID())
			if err != nil {
				return err
			}
			referral = &services.ReferralParty{Referrer: referrer, Account: referrerAccount}
		}
	}

	result, err := engine.SettleLeg(o, leg, payee, payeeAccount, referral, now)
	if err != nil {
		return err
	}

	if err = uow.SettlementRepository().Add(ctx, result.Settlement); err != nil {
		return err
	}
	if result.ReferralSettlement != nil {
		if err = uow.SettlementRepository().AddReferral(ctx, result.ReferralSettlement); err != nil {
			return err
		}
		if err = ledgerRepo.Save(ctx, referral.Account); err != nil {
			return err
		}
	}

	if err = actorRepo.Update(ctx, payee); err != nil {
		return err
	}
	return ledgerRepo.Save(ctx, payeeAccount)
}
