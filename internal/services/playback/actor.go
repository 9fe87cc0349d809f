package playback

import (
	"context"
	"log"
)

// actor is the single consumer of a guild's command queue
type actor struct {
	svc     *service
	session *session

	jobs chan func()
	quit chan struct{}
	done chan struct{}
}

func newActor(svc *service, guildID string) *actor {
	return &actor{
		svc:     svc,
		session: &session{guildID: guildID},
		jobs:    make(chan func()),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (a *actor) loop() {
	defer close(a.done)

	for {
		var ended <-chan struct{}
		if a.session.dispatcher != nil {
			ended = a.session.dispatcher.Done()
		}

		select {
		case job := <-a.jobs:
			a.releaseIfEnded()
			job()
		case <-ended:
			a.releaseIfEnded()
		case <-a.quit:
			if a.session.dispatcher != nil {
				a.svc.release(context.Background(), a.session)
			}
			return
		}
	}
}

// releaseIfEnded idles the session when its run has finished, so a job
// never acts on a stream that is already over
func (a *actor) releaseIfEnded() {
	if a.session.dispatcher == nil {
		return
	}

	select {
	case <-a.session.dispatcher.Done():
	default:
		return
	}

	log.Printf("[Playback] Finished %q on guild %s", a.session.mediaTitle, a.session.guildID)
	a.svc.release(context.Background(), a.session)
}

// run queues fn on the actor and waits for it to finish
func (a *actor) run(ctx context.Context, fn func(*session) error) error {
	result := make(chan error, 1)
	job := func() { result <- fn(a.session) }

	select {
	case a.jobs <- job:
	case <-a.done:
		return ErrServiceClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
