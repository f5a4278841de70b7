// Package attract implements the attract-mode timer.
//
// The timer accumulates idle, playlist, collection and scroll-burst time and
// turns them into a Signal for the navigation controller. It never touches the
// view: the controller decides what a signal means for the current state.
//
// A burst starts once the UI has been idle for IdleTime (IdleNextTime after
// the first burst) and lasts a random duration in [MinScrollTime,
// MaxScrollTime]. Playlist and collection switches only fire between bursts
// and always clear the idle and burst counters. When Launch is enabled, a
// finished burst arms a cooldown after which a LaunchRandom signal is rolled
// with probability LaunchChance.
//
//	t := attract.New(attract.ConfigFromSettings(settings.Attract))
//	switch t.Update(dt, view.IsAttractIdle()) {
//	case attract.SignalScroll:
//	    // begin auto-scroll
//	}
package attract
