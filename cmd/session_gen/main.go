package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/logging"
)

// session_gen mints a development session directly in Redis, in the same
// format the identity provider writes, so the API can be exercised without
// a sign-in flow.
func main() {
	userID := flag.String("user", "", "user id (uuid)")
	orgID := flag.String("org", "", "organization id (uuid)")
	name := flag.String("name", "Dev User", "display name")
	role := flag.String("role", "member", "role: member|instructor|admin|owner")
	flag.Parse()

	if *userID == "" || *orgID == "" {
		log.Fatal("usage: session_gen -user <uuid> -org <uuid> [-name X] [-role member]")
	}

	_ = godotenv.Load()
	if err := logging.Init("development"); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	sessions := common.NewSessionService(common.NewRedisClient())

	sessionID, err := sessions.CreateSession(
		context.Background(),
		*userID, *orgID, *name,
		constants.OrgRole(*role),
	)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}

	fmt.Println("New session:", sessionID)
	fmt.Println("Use it with: curl -H 'X-Session-Id: " + sessionID + "' http://localhost:8080/api/v1/scheduler/day")
}
