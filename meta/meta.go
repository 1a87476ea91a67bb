package meta

import "time"

// MaxDepth is the ply depth at which decision tree nodes become leaves.
const MaxDepth = 4

// MaxTurns bounds a self-play game. A real game never exceeds 60 placements plus passes.
const MaxTurns = 200

// NumGames is the default number of games per experiment.
const NumGames = 10

// DefaultAddr is the listen address of the game server.
const DefaultAddr = ":8080"

// ShutdownTimeout bounds graceful server shutdown.
const ShutdownTimeout = 5 * time.Second

// RemoteTimeout bounds a move request to a remote game server.
const RemoteTimeout = 30 * time.Second
