package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is owned by a user and keeps its answers as an ordered list of
// references. The list may hold duplicates and references to deleted answers.
type Question struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Text      string               `bson:"text" json:"text"`
	User      primitive.ObjectID   `bson:"user" json:"user"`
	Answers   []primitive.ObjectID `bson:"answer" json:"answer"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
	Version   int                  `bson:"__v" json:"__v"`
}

func (q *Question) Validate() error {
	verr := &ValidationError{}
	if q.Text == "" {
		verr.add("text", "is required")
	}
	if q.User.IsZero() {
		verr.add("user", "is required")
	}
	return verr.orNil()
}

// Normalize makes an empty answer list serialize as [] rather than null.
func (q *Question) Normalize() *Question {
	if q.Answers == nil {
		q.Answers = []primitive.ObjectID{}
	}
	return q
}

func (q *Question) Clone() *Question {
	c := *q
	c.Answers = append([]primitive.ObjectID{}, q.Answers...)
	return &c
}

// QuestionPatch carries the fields a client may overwrite on update.
type QuestionPatch struct {
	Text    *string
	User    *primitive.ObjectID
	Answers *[]primitive.ObjectID
}

func (p QuestionPatch) Apply(q *Question) {
	if p.Text != nil {
		q.Text = *p.Text
	}
	if p.User != nil {
		q.User = *p.User
	}
	if p.Answers != nil {
		q.Answers = append([]primitive.ObjectID{}, (*p.Answers)...)
	}
}

// PopulatedQuestion is the list view of a question: owner expanded and every
// answer expanded together with its own owner.
type PopulatedQuestion struct {
	ID        primitive.ObjectID `json:"_id"`
	Text      string             `json:"text"`
	User      *User              `json:"user"`
	Answers   []*PopulatedAnswer `json:"answer"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Version   int                `json:"__v"`
}

// PopulateQuestion expands q using the given lookups. Answer references that
// do not resolve are dropped; order and duplicates of the rest are kept.
func PopulateQuestion(q *Question, users map[primitive.ObjectID]*User, answers map[primitive.ObjectID]*PopulatedAnswer) *PopulatedQuestion {
	out := &PopulatedQuestion{
		ID:        q.ID,
		Text:      q.Text,
		User:      users[q.User],
		Answers:   make([]*PopulatedAnswer, 0, len(q.Answers)),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
		Version:   q.Version,
	}
	for _, id := range q.Answers {
		if a, ok := answers[id]; ok {
			out.Answers = append(out.Answers, a)
		}
	}
	return out
}
