package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer is a free-text reply. It is attached to a question only through the
// question's answer list.
type Answer struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Text      string              `bson:"text" json:"text"`
	User      *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
	Version   int                 `bson:"__v" json:"__v"`
}

func (a *Answer) Validate() error {
	verr := &ValidationError{}
	if a.Text == "" {
		verr.add("text", "is required")
	}
	return verr.orNil()
}

func (a *Answer) Clone() *Answer {
	c := *a
	if a.User != nil {
		u := *a.User
		c.User = &u
	}
	return &c
}

// AnswerPatch carries the fields a client may overwrite on update. Nil fields
// are left untouched.
type AnswerPatch struct {
	Text *string
	User *primitive.ObjectID
}

func (p AnswerPatch) Apply(a *Answer) {
	if p.Text != nil {
		a.Text = *p.Text
	}
	if p.User != nil {
		u := *p.User
		a.User = &u
	}
}

// PopulatedAnswer is an answer with its user reference expanded. User is nil
// when the reference is missing or dangling.
type PopulatedAnswer struct {
	ID        primitive.ObjectID `json:"_id"`
	Text      string             `json:"text"`
	User      *User              `json:"user"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Version   int                `json:"__v"`
}

func PopulateAnswer(a *Answer, users map[primitive.ObjectID]*User) *PopulatedAnswer {
	out := &PopulatedAnswer{
		ID:        a.ID,
		Text:      a.Text,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Version:   a.Version,
	}
	if a.User != nil {
		out.User = users[*a.User]
	}
	return out
}
