package app

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/forcedowels/storefront/internal/apperr"
	"github.com/forcedowels/storefront/internal/distribution/domain"
	"github.com/forcedowels/storefront/internal/notify"
)

type Service struct {
	requests     RequestStore
	distributors DistributorStore
	sender       notify.Sender
	tmpl         notify.Templates
	log          *slog.Logger
}

func NewService(requests RequestStore, distributors DistributorStore, sender notify.Sender, tmpl notify.Templates, log *slog.Logger) *Service {
	return &Service{
		requests:     requests,
		distributors: distributors,
		sender:       sender,
		tmpl:         tmpl,
		log:          log,
	}
}

// Submit persists a pending application and notifies the business and the
// applicant. Email failures come back as warnings, never as request failure.
func (s *Service) Submit(ctx context.Context, in domain.SubmitInput) (domain.DistributionRequest, []string, error) {
	if err := validateSubmit(in); err != nil {
		return domain.DistributionRequest{}, nil, err
	}

	req := domain.DistributionRequest{
		UniqueID:     uuid.NewString(),
		BusinessName: strings.TrimSpace(in.BusinessName),
		FullName:     strings.TrimSpace(in.FullName),
		EmailAddress: strings.TrimSpace(in.EmailAddress),
		Territory:    strings.TrimSpace(in.Territory),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		Status:       domain.StatusPending,
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		return domain.DistributionRequest{}, nil, apperr.Wrap(apperr.Internal, "create distribution request", err)
	}

	var (
		mu       sync.Mutex
		warnings []string
	)
	warn := func(msg string) {
		mu.Lock()
		warnings = append(warnings, msg)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		notice := s.tmpl.DistributorApplicationNotice(
			created.BusinessName, created.FullName, created.EmailAddress,
			created.Territory, created.UniqueID,
		)
		if !notify.BestEffort(gctx, s.log, s.sender, notice) {
			warn("business notification email failed")
		}
		return nil
	})
	g.Go(func() error {
		receipt := s.tmpl.DistributorApplicationReceived(created.EmailAddress, created.FullName)
		if !notify.BestEffort(gctx, s.log, s.sender, receipt) {
			warn("applicant confirmation email failed")
		}
		return nil
	})
	_ = g.Wait()

	return created, warnings, nil
}

// Accept performs the pending -> accepted transition. The transition is the
// source of truth; distributor materialization and the acceptance email are
// best-effort afterwards.
func (s *Service) Accept(ctx context.Context, uniqueID string) (domain.DistributionRequest, []string, error) {
	req, err := s.respond(ctx, uniqueID, domain.StatusAccepted)
	if err != nil {
		return domain.DistributionRequest{}, nil, err
	}

	var warnings []string

	if _, err := s.distributors.Create(ctx, domain.Distributor{
		BusinessName: req.BusinessName,
		ContactName:  req.FullName,
		City:         req.City,
		State:        req.State,
		IsActive:     true,
	}); err != nil {
		s.log.Warn("distributor record creation failed",
			slog.String("unique_id", uniqueID),
			slog.Any("err", err),
		)
		warnings = append(warnings, "distributor record creation failed")
	}

	email := s.tmpl.DistributorAccepted(req.EmailAddress, req.BusinessName)
	if !notify.BestEffort(ctx, s.log, s.sender, email) {
		warnings = append(warnings, "acceptance email failed")
	}

	return req, warnings, nil
}

// Decline performs the pending -> declined transition and sends the
// notification email best-effort.
func (s *Service) Decline(ctx context.Context, uniqueID string) (domain.DistributionRequest, []string, error) {
	req, err := s.respond(ctx, uniqueID, domain.StatusDeclined)
	if err != nil {
		return domain.DistributionRequest{}, nil, err
	}

	var warnings []string
	email := s.tmpl.DistributorDeclined(req.EmailAddress, req.BusinessName)
	if !notify.BestEffort(ctx, s.log, s.sender, email) {
		warnings = append(warnings, "decline email failed")
	}

	return req, warnings, nil
}

func (s *Service) respond(ctx context.Context, uniqueID, status string) (domain.DistributionRequest, error) {
	if strings.TrimSpace(uniqueID) == "" {
		return domain.DistributionRequest{}, apperr.New(apperr.Invalid, "unique id is required")
	}

	req, transitioned, err := s.requests.Respond(ctx, uniqueID, status, time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return domain.DistributionRequest{}, apperr.New(apperr.NotFound, "distribution request not found")
		}
		return domain.DistributionRequest{}, apperr.Wrap(apperr.Internal, "respond to distribution request", err)
	}

	if !transitioned {
		// Replayed link click: report the settled state, change nothing.
		when := ""
		if req.RespondedAt != nil {
			when = req.RespondedAt.Format(time.RFC3339)
		}
		return domain.DistributionRequest{}, apperr.Newf(apperr.Conflict,
			"request already %s at %s", req.Status, when)
	}

	return req, nil
}

func validateSubmit(in domain.SubmitInput) error {
	if strings.TrimSpace(in.BusinessName) == "" {
		return apperr.New(apperr.Invalid, "businessName is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return apperr.New(apperr.Invalid, "fullName is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.EmailAddress)); err != nil {
		return apperr.New(apperr.Invalid, "emailAddress is invalid")
	}
	if strings.TrimSpace(in.Territory) == "" {
		return apperr.New(apperr.Invalid, "territory is required")
	}
	return nil
}
