package models

// GraphPerson is a person node as returned by graph assembly: the stored
// person fields plus, when the claiming account allows it, that account's
// profile overlay. ClaimedProfile is nil for unclaimed persons and for
// claims whose profile is hidden or absent.
type GraphPerson struct {
	Person
	ClaimedProfile *OverlayProfile
}

// FamilyGraph is a consistent snapshot of one family's graph
type FamilyGraph struct {
	People        []GraphPerson
	Relationships []Relationship
}
