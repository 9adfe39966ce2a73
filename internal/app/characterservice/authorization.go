package characterservice

import (
	"slices"

	"github.com/hraharahra/pathfinder/internal/app"
)

// IsAuthorized reports whether a character may register with this installation.
//
// When both whitelists are empty registration is open. Otherwise membership
// of either the corporation whitelist or the alliance whitelist is
// sufficient. A denial is a regular result, not an error.
func (s *CharacterService) IsAuthorized(c *app.Character) bool {
	if len(s.cfg.WhitelistCorporationIDs) == 0 && len(s.cfg.WhitelistAllianceIDs) == 0 {
		return true
	}
	if c.HasCorporation() && slices.Contains(s.cfg.WhitelistCorporationIDs, c.Corporation.ID) {
		return true
	}
	if c.HasAlliance() && slices.Contains(s.cfg.WhitelistAllianceIDs, c.Alliance.ID) {
		return true
	}
	return false
}
