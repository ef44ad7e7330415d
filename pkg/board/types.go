package board

import "time"

// Swimlane is a named grouping container for cards.
type Swimlane struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Archived bool   `json:"archived"`
	Type     string `json:"type"`
}

// EntityID returns the swimlane identifier.
func (s Swimlane) EntityID() string { return s.ID }

// EntityName returns the swimlane title.
func (s Swimlane) EntityName() string { return s.Title }

// List is a column a card belongs to. Lists are never synthesized.
type List struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Archived bool   `json:"archived"`
}

// EntityID returns the list identifier.
func (l List) EntityID() string { return l.ID }

// EntityName returns the list title.
func (l List) EntityName() string { return l.Title }

// Profile holds the user fields the importer reads.
type Profile struct {
	Fullname string `json:"fullname"`
}

// User is a board member. Users are read-only for the importer.
type User struct {
	ID       string  `json:"_id"`
	Username string  `json:"username"`
	Profile  Profile `json:"profile"`
}

// EntityID returns the user identifier.
func (u User) EntityID() string { return u.ID }

// EntityName returns the user's full name.
func (u User) EntityName() string { return u.Profile.Fullname }

// Label is a board label.
type Label struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// EntityID returns the label identifier.
func (l Label) EntityID() string { return l.ID }

// EntityName returns the label name.
func (l Label) EntityName() string { return l.Name }

// CustomField is a board level custom field definition.
type CustomField struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// EntityID returns the custom field identifier.
func (c CustomField) EntityID() string { return c.ID }

// EntityName returns the custom field name.
func (c CustomField) EntityName() string { return c.Name }

// CustomFieldValue is a card's value for one custom field.
type CustomFieldValue struct {
	ID    string `json:"_id"`
	Value any    `json:"value"`
}

// Card is a work item. StartAt and DueAt are written as null when unset.
type Card struct {
	ID           string             `json:"_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Assignees    []string           `json:"assignees"`
	StartAt      *time.Time         `json:"startAt"`
	DueAt        *time.Time         `json:"dueAt"`
	ListID       string             `json:"listId"`
	SwimlaneID   string             `json:"swimlaneId"`
	LabelIDs     []string           `json:"labelIds"`
	CustomFields []CustomFieldValue `json:"customFields"`
	Archived     bool               `json:"archived"`
}

// EntityID returns the card identifier.
func (c Card) EntityID() string { return c.ID }

// EntityName returns the card title.
func (c Card) EntityName() string { return c.Title }
