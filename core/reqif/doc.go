// Package reqif reads and writes ReqIF requirements-interchange documents.
//
// A document is an identity-sharing object graph: datatype definitions, spec
// types with their attribute definitions, spec objects, relations, relation
// groups and specifications whose hierarchies point back at spec objects.
// Every entity is owned by the document's Content registry; cross references
// are plain pointers into that registry, so two references to the same
// identifier are the same Go value.
//
// Reading resolves identifier references against the registry. Depending on
// the slot, a dangling reference either yields a registered stand-in entity
// (fallback policy) or nil (nullable policy); see the resolver for the slot
// table.
//
// The Codec offers blocking Read/Write and context-aware ReadContext /
// WriteContext. Both run the same traversal; the context variants check for
// cancellation at every token read and every write primitive.
package reqif
