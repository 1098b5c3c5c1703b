package tui

// StickerCategory is one tab of the sticker picker.
type StickerCategory struct {
	Name     string
	Stickers []string
	// IsText categories place their entries as text stickers.
	IsText bool
}

var StickerCategories = []StickerCategory{
	{Name: "Emoji", Stickers: []string{"😍", "🥰", "😭", "🤣", "😎", "🥺", "✨", "💕"}},
	{Name: "Deco", Stickers: []string{"⭐", "🌙", "☁️", "🌈", "🎀", "🌸", "🍀", "💫"}},
	{Name: "Text", Stickers: []string{"Best", "Wow", "Moving", "Fun", "Tears", "Heart!", "The End!", "Binge"}, IsText: true},
	{Name: "Reaction", Stickers: []string{"👍", "❤️", "🔥", "😢", "😱", "🤔", "👏", "💯"}},
}
