package events

// EventType represents the type of board event
type EventType int

const (
	// EventObstaclePlaced signals a user obstacle was added
	// Trigger: Session.PlaceObstacle
	// Consumer: Renderer | Payload: *CellPayload
	EventObstaclePlaced EventType = iota + 1

	// EventObstacleRemoved signals a user obstacle was removed
	// Trigger: Session.RemoveObstacle
	// Consumer: Renderer | Payload: *CellPayload
	EventObstacleRemoved

	// EventStartSet signals the start endpoint was placed
	// Trigger: Session.ToggleStart / SetStart
	// Consumer: Renderer | Payload: *CellPayload
	EventStartSet

	// EventStartCleared signals the start endpoint was removed
	// Consumer: Renderer | Payload: *CellPayload (previous cell)
	EventStartCleared

	// EventGoalSet signals the goal endpoint was placed
	// Trigger: Session.ToggleGoal / SetGoal
	// Consumer: Renderer | Payload: *CellPayload
	EventGoalSet

	// EventGoalCleared signals the goal endpoint was removed
	// Consumer: Renderer | Payload: *CellPayload (previous cell)
	EventGoalCleared

	// EventPathMarkerPlaced signals one revealed path cell
	// Trigger: RevealScheduler tick, at most one per reveal interval
	// Consumer: Renderer, AudioHandler | Payload: *CellPayload
	EventPathMarkerPlaced

	// EventAllMarkersCleared signals every placed path marker must be destroyed
	// Trigger: Board mutation during/after a reveal, new search
	// Consumer: Renderer | Payload: nil
	EventAllMarkersCleared

	// EventSearchFailed signals the search could not connect Start to Goal
	// Trigger: Session.RunSearch, once per failing invocation
	// Consumer: Renderer (status), AudioHandler | Payload: *SearchFailedPayload
	EventSearchFailed

	// EventSearchCompleted signals a path was found and the reveal started
	// Trigger: Session.RunSearch
	// Consumer: Renderer (status) | Payload: *SearchCompletedPayload
	EventSearchCompleted

	// EventRevealFinished signals the reveal returned to Idle on its own
	// Trigger: RevealScheduler reached Goal or exhausted its path
	// Consumer: AudioHandler | Payload: nil
	EventRevealFinished

	// EventBoardReset signals every obstacle and endpoint was removed
	// Trigger: Session.Reset
	// Consumer: Renderer | Payload: *BoardPayload
	EventBoardReset

	// EventLayoutLoaded signals the board was replaced wholesale
	// Carries the full board so a consumer never replays per-cell events past queue capacity
	// Trigger: Session.LoadLayout
	// Consumer: Renderer | Payload: *BoardPayload
	EventLayoutLoaded
)
