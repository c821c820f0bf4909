package gamesync

import "time"

type Job string

const (
	JobHouses        Job = "update_houses"
	JobPlayers       Job = "update_players"
	JobOrganizations Job = "update_organizations"
)

func (j Job) Valid() bool {
	switch j {
	case JobHouses, JobPlayers, JobOrganizations:
		return true
	default:
		return false
	}
}

type Request struct {
	Job Job
}

type Response struct {
	Job     Job
	Fetched int
	Created int
	Updated int
	Skipped int
	Elapsed time.Duration
}
