package domain

// ConversationID возвращает каноничное имя канала для пары пользователей:
// id сортируются лексикографически и склеиваются через "_", поэтому обе
// стороны получают одно и то же имя независимо от порядка аргументов.
func ConversationID(a, b string) string {
	if a > b {
		a, b = b, a
	}

	return a + "_" + b
}
