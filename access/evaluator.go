package access

import (
	"context"
	"log"
	"strings"

	"github.com/qasemB/Ecommerce-Api/models"
	"gorm.io/gorm"
)

type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// RoleGrant is an immutable snapshot of one role of a user.
type RoleGrant struct {
	Super  bool
	Routes []Route
}

// GrantsOf snapshots loaded roles (with their permissions) into grants.
// Stored methods are compared case-insensitively.
func GrantsOf(roles []models.Role) []RoleGrant {
	grants := make([]RoleGrant, 0, len(roles))
	for _, role := range roles {
		g := RoleGrant{Super: role.IsSuper}
		for _, p := range role.Permissions {
			g.Routes = append(g.Routes, Route{
				Pattern: strings.Trim(p.Path, "/"),
				Verb:    Verb(strings.ToLower(strings.TrimSpace(p.Method))),
			})
		}
		grants = append(grants, g)
	}
	return grants
}

// EffectiveRoutes is the union of every role's routes with duplicates
// collapsed.
func EffectiveRoutes(grants []RoleGrant) map[Route]struct{} {
	set := make(map[Route]struct{})
	for _, g := range grants {
		for _, r := range g.Routes {
			set[r] = struct{}{}
		}
	}
	return set
}

// Decide allows any holder of a super role unconditionally. Everybody else
// needs a permission whose template and verb equal route exactly.
func Decide(grants []RoleGrant, route Route) Decision {
	for _, g := range grants {
		if g.Super {
			return Allow
		}
	}
	if _, ok := EffectiveRoutes(grants)[route]; ok {
		return Allow
	}
	return Deny
}

// Evaluator resolves a user's roles from the store on every call; nothing is
// cached between requests.
type Evaluator struct {
	db *gorm.DB
}

func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{db: db}
}

// Authorize loads userID's roles and permissions and decides route. A lookup
// failure counts as an empty permission set.
func (e *Evaluator) Authorize(ctx context.Context, userID uint, route Route) Decision {
	var user models.User
	err := e.db.WithContext(ctx).
		Preload("Roles.Permissions").
		First(&user, userID).Error
	if err != nil {
		log.Printf("⚠️ access: load roles of user %d: %v", userID, err)
		return Deny
	}
	return Decide(GrantsOf(user.Roles), route)
}
