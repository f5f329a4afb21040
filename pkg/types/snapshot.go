package types

// StateSnapshot.state:
//   phase: "game_start" | "round_start" | "figure_selection" | "dice_roll" | "figure_movement" | "round_end" | "game_over"
//   round: number
//   active_team: "red" | "blue"
//   last_dice: number
//   goal: number // target tile of the current move, -1 when none
//   turn_again: boolean
//   selected: string // figure id, e.g. "red-2"
//   winner: "red" | "blue" // only once the game is over
//   dice: { mode: "regular" | "super", value: number, in_menu: boolean } // only while rolling
//   teams: { red: Team, blue: Team }
//     Team: super_dice_charge|super_dice_ready|finished|on_ramp|entry|figures
//     Figure: id|state ("on_ramp" | "in_game" | "finished")|board_index|moving|jumping|attacking|dead
//   tiles: { index, type ("standard" | "spikes" | "turn_again" | "final_spot"), occupant, spot_team, spot_taken }[]
//
// Event:
//   type: "GameStarted" | "RoundStarted" | "FigureMoving" | "WaypointReached" | ... // see engine.EventType
//   team, figure, round, value, ready, dice: set as the event type needs them
