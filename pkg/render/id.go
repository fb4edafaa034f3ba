package render

import "github.com/google/uuid"

// elementNamespace scopes element ids to storyline scenes.
var elementNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/storyline/element"))

// ElementID returns a stable document id for the element of layer with the
// given key. Keys may contain characters that are not valid in ids, so the
// id is a name-based UUID rather than the key itself.
func ElementID(layer Layer, key string) string {
	return "sl-" + uuid.NewSHA1(elementNamespace, []byte(string(layer)+"\x00"+key)).String()
}
