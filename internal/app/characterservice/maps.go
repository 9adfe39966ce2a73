package characterservice

import (
	"context"

	"github.com/hraharahra/pathfinder/internal/app"
)

// AccessibleMaps returns the maps a character can access.
//
// The result is the union of maps shared with the character's alliance,
// maps shared with its corporation and up to the configured maximum of
// the character's own active maps, oldest first. The union is not
// deduplicated, a map shared through more than one source appears once
// per source.
func (s *CharacterService) AccessibleMaps(ctx context.Context, characterID int32) ([]*app.Map, error) {
	c, err := s.st.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	mm := make([]*app.Map, 0)
	if c.HasAlliance() {
		xx, err := s.st.ListAllianceMaps(ctx, c.Alliance.ID)
		if err != nil {
			return nil, err
		}
		mm = append(mm, xx...)
	}
	if c.HasCorporation() {
		xx, err := s.st.ListCorporationMaps(ctx, c.Corporation.ID)
		if err != nil {
			return nil, err
		}
		mm = append(mm, xx...)
	}
	xx, err := s.st.ListCharacterMaps(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if len(xx) > s.cfg.MaxPrivateMaps {
		xx = xx[:s.cfg.MaxPrivateMaps]
	}
	mm = append(mm, xx...)
	return mm, nil
}
