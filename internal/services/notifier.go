package services

// Notifier fans mutation events out to the viewers of a season. The
// realtime hub implements it; services treat it as fire-and-forget and a
// nil notifier disables broadcasts (tests).
type Notifier interface {
	Broadcast(seasonID uint64, event string, data interface{})
}

func notify(n Notifier, seasonID uint64, event string, data interface{}) {
	if n == nil {
		return
	}
	n.Broadcast(seasonID, event, data)
}
