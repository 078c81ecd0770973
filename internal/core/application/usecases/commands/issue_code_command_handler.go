package commands

import (
	"context"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/verification"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"
)

type codeIssuer struct {
	lifecycle Lifecycle
	codes     ports.CodeStore
	notifier  ports.Notifier
	ttl       time.Duration
}

// issue generates the code inside the transition and stores it once the transition has
// committed, so a failed commit leaves any previous code live. A store or notify failure
// after the commit is reported as partially applied; the partner recovers with a reissue.
func (c codeIssuer) issue(
	ctx context.Context,
	actor kernel.Actor,
	id kernel.OrderID,
	event order.Event,
	mutate mutation,
) (IssuedCode, error) {
	var code verification.Code

	o, err := c.lifecycle.run(ctx, actor, id, event, mutate,
		func(_ context.Context, _ *order.Order, now time.Time) error {
			var genErr error
			code, genErr = verification.Generate(id, now)
			return genErr
		})
	if err != nil {
		return IssuedCode{}, err
	}

	if err = c.codes.Put(ctx, code); err != nil {
		return IssuedCode{}, errs.NewPartiallyAppliedError(event.String(), id.String(), err)
	}

	expiresAt := code.ExpiresAt(c.ttl)
	err = c.notifier.Notify(ctx, ports.CodeNotification{
		OrderID:   id,
		Code:      code.Digits(),
		Recipient: o.Customer().Email(),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		// Nobody knows the digits, so the code is withdrawn.
		_ = c.codes.Delete(context.WithoutCancel(ctx), id)
		return IssuedCode{}, errs.NewPartiallyAppliedError(event.String(), id.String(), err)
	}

	return IssuedCode{OrderID: id, ExpiresAt: expiresAt}, nil
}

// IssueCodeCommandHandler moves DELIVERY_ASSIGNED to CODE_ISSUED and sends a fresh code to
// the customer. A second issue fails as already applied; use ReissueCodeCommandHandler.
type IssueCodeCommandHandler struct {
	issuer codeIssuer
}

func NewIssueCodeCommandHandler(
	lifecycle Lifecycle,
	codes ports.CodeStore,
	notifier ports.Notifier,
	ttl time.Duration,
) IssueCodeCommandHandler {
	return IssueCodeCommandHandler{issuer: newCodeIssuer(lifecycle, codes, notifier, ttl)}
}

func (h IssueCodeCommandHandler) Handle(ctx context.Context, cmd IssueCodeCommand) (IssuedCode, error) {
	if err := cmd.Validate(); err != nil {
		return IssuedCode{}, err
	}

	return h.issuer.issue(ctx, cmd.Actor(), cmd.OrderID(), order.IssueCode,
		func(o *order.Order, now time.Time) error {
			return o.IssueCode(now)
		})
}

type ReissueCodeCommandHandler struct {
	issuer codeIssuer
}

func NewReissueCodeCommandHandler(
	lifecycle Lifecycle,
	codes ports.CodeStore,
	notifier ports.Notifier,
	ttl time.Duration,
) ReissueCodeCommandHandler {
	return ReissueCodeCommandHandler{issuer: newCodeIssuer(lifecycle, codes, notifier, ttl)}
}

func (h ReissueCodeCommandHandler) Handle(ctx context.Context, cmd ReissueCodeCommand) (IssuedCode, error) {
	if err := cmd.Validate(); err != nil {
		return IssuedCode{}, err
	}

	return h.issuer.issue(ctx, cmd.Actor(), cmd.OrderID(), order.ReissueCode,
		func(o *order.Order, now time.Time) error {
			return o.ReissueCode(now)
		})
}

func newCodeIssuer(lifecycle Lifecycle, codes ports.CodeStore, notifier ports.Notifier, ttl time.Duration) codeIssuer {
	if ttl <= 0 {
		ttl = verification.DefaultTTL
	}
	return codeIssuer{lifecycle: lifecycle, codes: codes, notifier: notifier, ttl: ttl}
}
