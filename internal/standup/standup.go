package standup

import (
	"time"

	"github.com/google/uuid"
)

type Standup struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Date     time.Time `json:"date"`
	WhatIDid string    `json:"what_i_did"`
	WhatIllDo string   `json:"what_ill_do"`
	Blockers string    `json:"blockers,omitempty"`
}

func New(userID, whatIDid, whatIllDo, blockers string, now time.Time) Standup {
	return Standup{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      now,
		WhatIDid:  whatIDid,
		WhatIllDo: whatIllDo,
		Blockers:  blockers,
	}
}
