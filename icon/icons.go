package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Like
	Liked
	Comment
	Views
	Play
	Pause
	User
	Upload
	Link
)

var icons = map[Icon]*iconDef{
	Fail:     {emoji: "💀", nerd: "", plain: "X"},
	Success:  {emoji: "🎉", nerd: "", plain: "✓"},
	Progress: {emoji: "⏳", nerd: "", plain: "..."},
	Like:     {emoji: "🤍", nerd: "", plain: "<3"},
	Liked:    {emoji: "❤️", nerd: "", plain: "♥"},
	Comment:  {emoji: "💬", nerd: "", plain: "#"},
	Views:    {emoji: "👀", nerd: "", plain: "o"},
	Play:     {emoji: "▶️", nerd: "", plain: ">"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||"},
	User:     {emoji: "👤", nerd: "", plain: "@"},
	Upload:   {emoji: "📤", nerd: "", plain: "^"},
	Link:     {emoji: "🔗", nerd: "", plain: "~"},
}
