package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/auth"
	"github.com/talentbridge/intake-backend/internal/models"
	"github.com/talentbridge/intake-backend/internal/session"
)

const identityKey = "identity"

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// SessionResolver maps a session cookie value to an applicant id.
type SessionResolver interface {
	Resolve(ctx context.Context, cookieValue string) (uint, bool, error)
}

// ApplicantFinder binds a verified email claim to an applicant row.
type ApplicantFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Applicant, error)
}

// IdentityResolver turns request-supplied credentials into a trusted,
// request-scoped identity. All collaborators are injected at
// construction; nothing here is lazily initialized or mutated after
// startup.
//
// Failure policy: every authentication failure (missing token, bad
// signature, expired token, missing role or scope, missing session)
// is reported as the same generic 401. The single exception is a valid
// token whose email matches no applicant, which is a 404: "register
// first" is a legitimate onboarding state, not a probe.
type IdentityResolver struct {
	verifier   TokenVerifier
	sessions   SessionResolver
	applicants ApplicantFinder
}

func NewIdentityResolver(verifier TokenVerifier, sessions SessionResolver, applicants ApplicantFinder) *IdentityResolver {
	return &IdentityResolver{verifier: verifier, sessions: sessions, applicants: applicants}
}

// Identity returns the identity attached by one of the Require*
// middlewares.
func Identity(c *fiber.Ctx) (*auth.Identity, bool) {
	ident, ok := c.Locals(identityKey).(*auth.Identity)
	return ident, ok
}

type jwtOpts struct {
	allowUnregistered bool
	role              string
	scope             string
}

// RequireJWT admits only requests carrying a valid bearer token whose
// email claim matches a registered applicant.
func (r *IdentityResolver) RequireJWT() fiber.Handler {
	return r.jwtHandler(jwtOpts{})
}

// RequireJWTAllowUnregistered is RequireJWT except that a valid token
// with no matching applicant succeeds with an unbound identity. Used by
// flows where the applicant may not exist yet.
func (r *IdentityResolver) RequireJWTAllowUnregistered() fiber.Handler {
	return r.jwtHandler(jwtOpts{allowUnregistered: true})
}

// RequireRole is RequireJWT plus a roles-claim membership check.
// A missing role is a 401, not a 403: the two are deliberately
// indistinguishable.
func (r *IdentityResolver) RequireRole(role string) fiber.Handler {
	return r.jwtHandler(jwtOpts{role: role})
}

// RequireScope is RequireJWT plus an exact-token membership check on
// the space-delimited scope claim.
func (r *IdentityResolver) RequireScope(scope string) fiber.Handler {
	return r.jwtHandler(jwtOpts{scope: scope})
}

func (r *IdentityResolver) jwtHandler(opts jwtOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, present := bearerToken(c)
		if !present {
			return apperr.Unauthenticated()
		}
		claims, err := r.verifier.Verify(raw)
		if err != nil {
			return apperr.Unauthenticated()
		}
		if opts.role != "" && !auth.HasRole(claims, opts.role) {
			return apperr.Unauthenticated()
		}
		if opts.scope != "" && !auth.HasScope(claims, opts.scope) {
			return apperr.Unauthenticated()
		}

		ident := &auth.Identity{Claims: claims}
		applicant, err := r.applicants.FindByEmail(c.UserContext(), claims.Email)
		switch {
		case err == nil:
			ident.ApplicantID = applicant.ID
			ident.Registered = true
		case apperr.IsKind(err, apperr.KindNotFound):
			if !opts.allowUnregistered {
				return err
			}
		default:
			return err
		}

		c.Locals(identityKey, ident)
		return c.Next()
	}
}

// credential resolution outcome, per strategy
type outcome int

const (
	outcomeResolved outcome = iota
	outcomeNotPresent
	outcomeInvalid
)

type resolveFunc func(c *fiber.Ctx) (*auth.Identity, outcome, error)

// RequireJWTOrCookie tries an ordered list of credential strategies,
// bearer token first and session cookie second, stopping at the first
// resolved identity. A strategy whose credential is absent falls
// through to the next; any other failure ends resolution. Failures
// collapse into the generic 401 unless the strategy reported a distinct
// error (applicant 404, store breakage).
func (r *IdentityResolver) RequireJWTOrCookie() fiber.Handler {
	strategies := []resolveFunc{r.resolveBearer, r.resolveCookie}
	return func(c *fiber.Ctx) error {
		for _, resolve := range strategies {
			ident, out, err := resolve(c)
			switch out {
			case outcomeResolved:
				c.Locals(identityKey, ident)
				return c.Next()
			case outcomeNotPresent:
				continue
			default:
				if err != nil {
					return err
				}
				return apperr.Unauthenticated()
			}
		}
		return apperr.Unauthenticated()
	}
}

func (r *IdentityResolver) resolveBearer(c *fiber.Ctx) (*auth.Identity, outcome, error) {
	raw, present := bearerToken(c)
	if !present {
		return nil, outcomeNotPresent, nil
	}
	claims, err := r.verifier.Verify(raw)
	if err != nil {
		return nil, outcomeInvalid, nil
	}
	applicant, err := r.applicants.FindByEmail(c.UserContext(), claims.Email)
	if err != nil {
		return nil, outcomeInvalid, err
	}
	return &auth.Identity{
		Claims:      claims,
		ApplicantID: applicant.ID,
		Registered:  true,
	}, outcomeResolved, nil
}

func (r *IdentityResolver) resolveCookie(c *fiber.Ctx) (*auth.Identity, outcome, error) {
	cookie := c.Cookies(session.CookieName)
	if cookie == "" {
		return nil, outcomeNotPresent, nil
	}
	applicantID, ok, err := r.sessions.Resolve(c.UserContext(), cookie)
	if err != nil {
		return nil, outcomeInvalid, apperr.Internal("failed to resolve session", err)
	}
	if !ok {
		return nil, outcomeInvalid, nil
	}
	return &auth.Identity{ApplicantID: applicantID, Registered: true}, outcomeResolved, nil
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
