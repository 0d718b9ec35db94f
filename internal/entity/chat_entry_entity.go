package entity

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatEntry struct {
	Role ChatRole
	Text string
}
