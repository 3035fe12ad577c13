package encode

type EncodeOption func(*EncState)

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeBody controls whether the body follows the frontmatter. Defaults to
// true.
func EncodeBody(v bool) EncodeOption {
	return func(es *EncState) { es.body = v }
}
