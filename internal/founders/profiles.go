package founders

import (
	"strings"

	"github.com/spigell/cofounder-match/internal/compatibility"
)

type Profiles struct {
	Items []*compatibility.FounderProfile
}

func (p *Profiles) Len() int {
	return len(p.Items)
}

func (p *Profiles) FindByID(id string) *compatibility.FounderProfile {
	if id == "" {
		return nil
	}
	for _, profile := range p.Items {
		if profile.ID == id {
			return profile
		}
	}
	return nil
}

func (p *Profiles) FindByEmail(email string) *compatibility.FounderProfile {
	if email == "" {
		return nil
	}
	for _, profile := range p.Items {
		if strings.EqualFold(profile.Email, email) {
			return profile
		}
	}
	return nil
}

// Find looks ref up as an id first and as an email second.
func (p *Profiles) Find(ref string) *compatibility.FounderProfile {
	ref = strings.TrimSpace(ref)
	if found := p.FindByID(ref); found != nil {
		return found
	}
	return p.FindByEmail(ref)
}
