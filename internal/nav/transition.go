package nav

import (
	"github.com/muurk/marquee/internal/attract"
	"github.com/muurk/marquee/internal/input"
)

// Step computes the phase that follows p and the effects to run on the way.
// It reads nothing but its arguments, so every transition can be tested
// without a view or launcher.
//
// Wait states stay put until the view reports idle. Request states always
// advance on the tick they are entered. Key events only arrive in states
// where State.AcceptsInput is true.
func Step(ctx Context, p Phase, ev Event) (Phase, []Effect) {
	switch p.State {
	case StateInit:
		return fresh(StateLoadArt)
	case StateLoadArt:
		effects := []Effect{}
		if ctx.RandomizeStart {
			effects = append(effects, MoveSelection{Jump: JumpRandom})
		}
		effects = append(effects, NewItemSelected{}, EnterMenu{})
		return fresh(StateEnter, effects...)
	case StateEnter:
		if !ctx.View.Idle {
			return p, nil
		}
		return afterEnter(ctx)

	case StateIdle:
		return idle(ctx, p, ev)

	case StateScrollForward, StateScrollBack:
		if ctx.ScrollHeld {
			return p, nil
		}
		return fresh(StateHighlightRequest, StopScroll{})

	case StateHighlightRequest:
		return advance(p, StateHighlightExit, HighlightExit{})
	case StateHighlightExit:
		return waitIdle(ctx, p, StateHighlightLoadArt, NewItemSelected{})
	case StateHighlightLoadArt:
		return advance(p, StateHighlightEnter, HighlightEnter{})
	case StateHighlightEnter:
		return waitIdle(ctx, p, StateIdle)

	case StateMenuJumpRequest:
		return advance(p, StateMenuJumpExit, HighlightExit{})
	case StateMenuJumpExit:
		return waitIdle(ctx, p, StateMenuJumpLoadArt, MoveSelection{Jump: p.Jump}, NewItemSelected{})
	case StateMenuJumpLoadArt:
		return advance(p, StateMenuJumpEnter, HighlightEnter{})
	case StateMenuJumpEnter:
		return waitIdle(ctx, p, StateIdle)

	case StatePlaylistNext:
		return playlistTo(ctx, ctx.Neighbors.NextPlaylist)
	case StatePlaylistPrev:
		return playlistTo(ctx, ctx.Neighbors.PrevPlaylist)
	case StatePlaylistNextCycle:
		return playlistTo(ctx, ctx.Neighbors.NextCyclePlaylist)
	case StatePlaylistPrevCycle:
		return playlistTo(ctx, ctx.Neighbors.PrevCyclePlaylist)
	case StatePlaylistRequest:
		return advance(p, StatePlaylistExit, PlaylistExit{})
	case StatePlaylistExit:
		return waitIdle(ctx, p, StatePlaylistLoadArt, SelectPlaylist{Name: p.Playlist}, NewItemSelected{})
	case StatePlaylistLoadArt:
		return advance(p, StatePlaylistEnter, PlaylistEnter{})
	case StatePlaylistEnter:
		return waitIdle(ctx, p, StateIdle)

	case StateFavoriteToggle:
		if fav := ctx.FavoritesPlaylist; fav != "" && ctx.View.Playlist == fav {
			return Phase{State: StatePlaylistRequest, Playlist: fav}, []Effect{ToggleFavorite{}}
		}
		return fresh(StateIdle, ToggleFavorite{})

	case StateHandleMenuEntry:
		return handleMenuEntry(ctx)
	case StateNextPageRequest:
		return advance(p, StateNextPageMenuExit, ExitMenu{})
	case StateNextPageMenuExit:
		return waitIdle(ctx, p, StateNextPageMenuLoadArt,
			Remember{}, Descend{Collection: p.Collection, Sibling: p.Sibling})
	case StateNextPageMenuLoadArt:
		if ev.Kind == EventResolutionFailed {
			return fresh(StateBackMenuLoadArt)
		}
		return advance(p, StateNextPageMenuEnter, enterEffects(ctx)...)
	case StateNextPageMenuEnter:
		if !ctx.View.Idle {
			return p, nil
		}
		if ctx.View.ItemCount == 0 && ctx.BackOnEmpty && hasParent(ctx) {
			return fresh(StateBackRequest)
		}
		return afterEnter(ctx)

	case StateCollectionNextCycle:
		return collectionTo(ctx, ctx.Neighbors.NextCollection)
	case StateCollectionPrevCycle:
		return collectionTo(ctx, ctx.Neighbors.PrevCollection)

	case StateCollectionDownRequest:
		return collectionStep(ctx, p, StateCollectionDownExit)
	case StateCollectionDownExit:
		return waitIdle(ctx, p, StateCollectionDownMenuEnter, Remember{}, Ascend{})
	case StateCollectionDownMenuEnter:
		return advance(p, StateCollectionDownEnter, enterEffects(ctx)...)
	case StateCollectionDownEnter:
		return waitIdle(ctx, p, StateCollectionDownScroll, MoveSelection{Jump: JumpNext})
	case StateCollectionDownScroll:
		return waitIdle(ctx, p, StateCollectionHighlightRequest)

	case StateCollectionUpRequest:
		return collectionStep(ctx, p, StateCollectionUpExit)
	case StateCollectionUpExit:
		return waitIdle(ctx, p, StateCollectionUpMenuEnter, Remember{}, Ascend{})
	case StateCollectionUpMenuEnter:
		return advance(p, StateCollectionUpEnter, enterEffects(ctx)...)
	case StateCollectionUpEnter:
		return waitIdle(ctx, p, StateCollectionUpScroll, MoveSelection{Jump: JumpPrev})
	case StateCollectionUpScroll:
		return waitIdle(ctx, p, StateCollectionHighlightRequest)

	case StateCollectionHighlightRequest:
		return advance(p, StateCollectionHighlightExit, HighlightExit{})
	case StateCollectionHighlightExit:
		return waitIdle(ctx, p, StateCollectionHighlightLoadArt, NewItemSelected{})
	case StateCollectionHighlightLoadArt:
		return advance(p, StateCollectionHighlightEnter, HighlightEnter{})
	case StateCollectionHighlightEnter:
		if !ctx.View.Idle {
			return p, nil
		}
		if ctx.EnterOnCollection && ctx.View.Selected == ItemCollection {
			return Phase{State: StateNextPageRequest, Collection: ctx.View.SelectedTarget}, nil
		}
		return fresh(StateIdle)

	case StateBackRequest:
		return advance(p, StateBackMenuExit, ExitMenu{})
	case StateBackMenuExit:
		return waitIdle(ctx, p, StateBackMenuLoadArt, Remember{}, Ascend{})
	case StateBackMenuLoadArt:
		return advance(p, StateBackMenuEnter, enterEffects(ctx)...)
	case StateBackMenuEnter:
		return waitIdle(ctx, p, StateIdle)

	case StateMenuModeStartRequest:
		return advance(p, StateMenuModeStartLoadArt,
			Remember{}, Descend{Collection: p.Collection, MenuMode: true})
	case StateMenuModeStartLoadArt:
		if ev.Kind == EventResolutionFailed {
			return fresh(StateBackMenuLoadArt)
		}
		return advance(p, StateMenuModeStartEnter, NewItemSelected{}, EnterMenu{})
	case StateMenuModeStartEnter:
		return waitIdle(ctx, p, StateIdle)

	case StateLaunchEnter:
		return waitIdle(ctx, p, StateLaunchRequest, Launch{Attract: false})
	case StateAttractLaunchEnter:
		return waitIdle(ctx, p, StateAttractLaunchRequest, Launch{Attract: true})
	case StateLaunchRequest, StateAttractLaunchRequest:
		if ev.Kind != EventLaunched {
			return p, nil
		}
		if ev.Reboot {
			return Phase{State: StateQuitRequest, Reboot: true}, nil
		}
		return advance(p, StateLaunchExit, LaunchExit{}, ReleaseInput{})
	case StateLaunchExit:
		return waitIdle(ctx, p, StateIdle, ResetAttract{KeepSet: p.Attract})

	case StateAttractEnter:
		if ev.Kind == EventKey || ctx.BurstOver {
			return breakAttract()
		}
		return waitAttractIdle(ctx, p, StateAttract, Scroll{Forward: true})
	case StateAttract:
		switch {
		case ev.Kind == EventKey:
			return breakAttract()
		case ev.Kind == EventAttract && ev.Signal == attract.SignalScrollStop:
			return fresh(StateAttractExit, StopScroll{}, AttractExit{})
		case ctx.BurstOver:
			// The timer only ends a burst with SignalScrollStop. Anything
			// else that stopped it would leave the list scrolling forever.
			return breakAttract()
		}
		return p, []Effect{AttractTick{}}
	case StateAttractExit:
		return waitIdle(ctx, p, StateHighlightRequest)
	case StateAttractPlaylist:
		return playlistTo(ctx, ctx.Neighbors.AttractPlaylist)
	case StateAttractCollection:
		return collectionTo(ctx, ctx.Neighbors.AttractCollection)

	case StateGameInfoEnter, StateCollectionInfoEnter, StateBuildInfoEnter:
		kind, _, _ := infoKindOf(p.State)
		return waitIdle(ctx, p, infoStates[kind][1])
	case StateGameInfo, StateCollectionInfo, StateBuildInfo:
		if ev.Kind != EventKey {
			return p, nil
		}
		kind, _, _ := infoKindOf(p.State)
		return fresh(infoStates[kind][2], InfoExit{Kind: kind})
	case StateGameInfoExit, StateCollectionInfoExit, StateBuildInfoExit:
		return waitIdle(ctx, p, StateIdle)

	case StateKioskToggle:
		return fresh(StateIdle, SetKiosk{On: !ctx.Kiosk})
	case StatePaused:
		if ev.Kind != EventKey {
			return p, nil
		}
		switch ev.Key {
		case input.KeyPause:
			return fresh(StateUnpause)
		case input.KeyQuitCombo:
			return fresh(StateQuitRequest)
		}
		return p, nil
	case StateUnpause:
		if !ctx.AttractEnabled {
			return fresh(StateIdle)
		}
		return fresh(StateAttractEnter, ActivateAttract{}, AttractEnter{})

	case StateQuitRequest:
		return advance(p, StateQuit, ExitMenu{})
	case StateQuit:
		return p, nil
	}

	// Unknown states fall back to idle so the controller can never wedge.
	return fresh(StateIdle)
}

func idle(ctx Context, p Phase, ev Event) (Phase, []Effect) {
	switch ev.Kind {
	case EventKey:
		return idleKey(ctx, p, ev.Key)
	case EventAttract:
		switch ev.Signal {
		case attract.SignalScroll:
			return fresh(StateAttractEnter, AttractEnter{})
		case attract.SignalSwitchPlaylist:
			return fresh(StateAttractPlaylist)
		case attract.SignalSwitchCollection:
			return fresh(StateAttractCollection)
		case attract.SignalLaunchRandom:
			if ctx.View.Selected != ItemLeaf {
				return p, nil
			}
			return Phase{State: StateAttractLaunchEnter, Attract: true}, []Effect{LaunchEnter{}}
		}
	}
	return p, nil
}

func idleKey(ctx Context, p Phase, k input.Key) (Phase, []Effect) {
	switch k {
	case input.KeyScrollForward, input.KeyScrollBack:
		if ctx.View.Scrolling {
			return fresh(StateHighlightRequest)
		}
		forward := k == input.KeyScrollForward
		if forward {
			return fresh(StateScrollForward, Scroll{Forward: true})
		}
		return fresh(StateScrollBack, Scroll{Forward: false})

	case input.KeyPageDown:
		return jump(JumpPageDown)
	case input.KeyPageUp:
		return jump(JumpPageUp)
	case input.KeyLetterDown:
		return jump(JumpLetterDown)
	case input.KeyLetterUp:
		return jump(JumpLetterUp)
	case input.KeyRandom:
		return jump(JumpRandom)

	case input.KeySelect:
		return fresh(StateHandleMenuEntry)
	case input.KeyBack:
		back, exit := CanGoBack(ctx.StackDepth, ctx.View.MenuDepth, ctx.ExitOnFirstPageBack && !ctx.Kiosk)
		switch {
		case back:
			return fresh(StateBackRequest)
		case exit:
			return fresh(StateQuitRequest)
		}
		return p, nil

	case input.KeyQuit:
		if ctx.Kiosk {
			return p, nil
		}
		return fresh(StateQuitRequest)
	case input.KeyQuitCombo:
		return fresh(StateQuitRequest)

	case input.KeyPlaylistNext:
		return fresh(StatePlaylistNext)
	case input.KeyPlaylistPrev:
		return fresh(StatePlaylistPrev)
	case input.KeyCyclePlaylistNext:
		return fresh(StatePlaylistNextCycle)
	case input.KeyCyclePlaylistPrev:
		return fresh(StatePlaylistPrevCycle)

	case input.KeyCollectionNext:
		return fresh(StateCollectionNextCycle)
	case input.KeyCollectionPrev:
		return fresh(StateCollectionPrevCycle)
	case input.KeyCollectionDown:
		return fresh(StateCollectionDownRequest)
	case input.KeyCollectionUp:
		return fresh(StateCollectionUpRequest)

	case input.KeyFavorite:
		if ctx.Kiosk {
			return p, nil
		}
		return fresh(StateFavoriteToggle)
	case input.KeyMenu:
		if ctx.Kiosk || ctx.MenuMode || ctx.MenuCollection == "" {
			return p, nil
		}
		return Phase{State: StateMenuModeStartRequest, Collection: ctx.MenuCollection}, nil

	case input.KeyGameInfo:
		if ctx.View.Selected != ItemLeaf {
			return p, nil
		}
		return fresh(StateGameInfoEnter, InfoEnter{Kind: InfoGame})
	case input.KeyCollectionInfo:
		return fresh(StateCollectionInfoEnter, InfoEnter{Kind: InfoCollection})
	case input.KeyBuildInfo:
		return fresh(StateBuildInfoEnter, InfoEnter{Kind: InfoBuild})

	case input.KeyKiosk:
		return fresh(StateKioskToggle)
	case input.KeyPause:
		return fresh(StatePaused, ResetAttract{KeepSet: false}, ReleaseInput{})
	}
	return p, nil
}

func handleMenuEntry(ctx Context) (Phase, []Effect) {
	switch ctx.View.Selected {
	case ItemLeaf:
		return fresh(StateLaunchEnter, LaunchEnter{})
	case ItemMenu:
		if ctx.Kiosk {
			return fresh(StateIdle)
		}
		fallthrough
	case ItemCollection:
		return Phase{State: StateNextPageRequest, Collection: ctx.View.SelectedTarget}, nil
	}
	return fresh(StateIdle)
}

// afterEnter finishes entering a collection, routing through a playlist
// request when the collection has an auto playlist and no remembered
// position.
func afterEnter(ctx Context) (Phase, []Effect) {
	auto := ctx.AutoPlaylist
	remembered := ctx.RememberMenu && ctx.Memory.Has
	if auto != "" && auto != ctx.View.Playlist && !remembered {
		return Phase{State: StatePlaylistRequest, Playlist: auto}, nil
	}
	return fresh(StateIdle)
}

// enterEffects load the art and play the enter animation of a collection
// that just became current.
func enterEffects(ctx Context) []Effect {
	effects := make([]Effect, 0, 3)
	if ctx.RememberMenu && ctx.Memory.Has {
		effects = append(effects, Restore{Playlist: ctx.Memory.Playlist, Offset: ctx.Memory.Offset})
	}
	return append(effects, NewItemSelected{}, EnterMenu{})
}

func playlistTo(ctx Context, name string) (Phase, []Effect) {
	if name == "" || name == ctx.View.Playlist {
		return fresh(StateIdle)
	}
	return Phase{State: StatePlaylistRequest, Playlist: name}, nil
}

func collectionTo(ctx Context, name string) (Phase, []Effect) {
	if name == "" || name == ctx.View.Collection {
		return fresh(StateIdle)
	}
	return Phase{State: StateNextPageRequest, Collection: name, Sibling: true}, nil
}

func collectionStep(ctx Context, p Phase, exit State) (Phase, []Effect) {
	if !hasParent(ctx) {
		return fresh(StateIdle)
	}
	return advance(p, exit, ExitMenu{})
}

func jump(j Jump) (Phase, []Effect) {
	return Phase{State: StateMenuJumpRequest, Jump: j}, nil
}

func breakAttract() (Phase, []Effect) {
	return fresh(StateAttractExit, StopScroll{}, AttractExit{}, ResetAttract{KeepSet: true})
}

// fresh enters s with no carried data.
func fresh(s State, effects ...Effect) (Phase, []Effect) {
	return Phase{State: s}, effects
}

// advance enters s keeping the data carried by p.
func advance(p Phase, s State, effects ...Effect) (Phase, []Effect) {
	p.State = s
	return p, effects
}

func waitIdle(ctx Context, p Phase, s State, effects ...Effect) (Phase, []Effect) {
	if !ctx.View.Idle {
		return p, nil
	}
	return advance(p, s, effects...)
}

func waitAttractIdle(ctx Context, p Phase, s State, effects ...Effect) (Phase, []Effect) {
	if !ctx.View.AttractIdle {
		return p, nil
	}
	return advance(p, s, effects...)
}
