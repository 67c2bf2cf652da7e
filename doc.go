// Package parade is a construction-vehicle parade for [Ebitengine].
//
// Machines are static body images with looping wheel frames composited on
// top. Each one enters from the right, pauses at the screen center while its
// title is shown, and exits to the left. The digit keys 1-9 toggle the slots,
// one per body image found in the asset directory, sorted by name.
//
// # Quick start
//
//	assets := parade.NewDirAssets(os.DirFS("assets"), logger)
//	session, err := parade.NewSession(parade.SessionOptions{
//		Screen: parade.Vec2{X: 1920, Y: 1080},
//		Motion: parade.MotionConfig{Speed: 75, PauseTicks: 50, FrameCadence: 2},
//		Race:   raceCfg,
//		Podium: podiumCfg,
//		Assets: assets,
//		Rand:   rand.New(rand.NewPCG(1, 2)),
//		Logger: logger,
//	})
//	// ...
//	game := parade.NewGame(session, compositor, win, logger)
//	parade.Run(game, win)
//
// [Session] holds all mutable state and is advanced once per tick by
// [Session.Update] with an [Input]. It never touches the real keyboard, so it
// can be driven by a [KeyState] in tests or by a [TestRunner] script.
//
// # Kinds
//
// Per-type knobs (wheel anchors, offset, scale, hook frames, spawn band) live
// in a [KindTable] keyed by body file name. [DefaultKinds] covers the five
// built-in machines; config files may override or add entries.
//
// # Modes
//
// In [ModeScripted] machines follow enter, pause and exit. In [ModeScroll]
// they scroll continuously and spawn at a random height. Pressing Space starts
// a [Race]: every active machine (or every catalog entry) drives left from a
// shared start line with random speed changes, and the top three finishers
// drop onto a [Podium].
//
// Events for every lifecycle change can be forwarded to an [EventSink]; the
// parade/ecs package publishes them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package parade
