package archive

// ReplyPair is an Instagram reply with its optional translation.
type ReplyPair struct {
	Main        Text  `json:"main"`
	Translation *Text `json:"translation,omitempty"`
}

// GroupReplyPairs pairs replies with translations. A translation belongs to
// the reply named by its parent_comment_id; a reply is keyed by its own ID.
// Groups without a reply are dropped. Pairs keep the order in which their key
// first appears.
func GroupReplyPairs(comments []Text) []ReplyPair {
	type group struct {
		main        *Text
		translation *Text
	}

	var order []int
	groups := make(map[int]*group)
	for i := range comments {
		c := comments[i]
		key := c.ID
		if c.ParentCommentID != nil {
			key = *c.ParentCommentID
		}

		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}

		switch c.Type {
		case TextTypeReply:
			g.main = &c
		case TextTypeTranslation:
			g.translation = &c
		}
	}

	pairs := make([]ReplyPair, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if g.main == nil {
			continue
		}
		pairs = append(pairs, ReplyPair{Main: *g.main, Translation: g.translation})
	}
	return pairs
}
