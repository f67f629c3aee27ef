/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package authz

import (
	"context"
	"sync"
	"time"

	"github.com/nuts-foundation/wallet-authz/auth/log"
)

// PruneRetention is how long authorizations are kept after their code expired.
const PruneRetention = time.Hour

// Pruner periodically deletes authorizations with codes that expired longer than PruneRetention ago.
type Pruner struct {
	Store    Store
	Interval time.Duration
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Start starts pruning in the background.
func (p *Pruner) Start() {
	var ctx context.Context
	ctx, p.cancel = context.WithCancel(context.Background())
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.prune(ctx)
			}
		}
	}()
}

// Stop stops pruning and waits for a running prune to finish.
func (p *Pruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *Pruner) prune(ctx context.Context) {
	count, err := p.Store.Prune(ctx, time.Now().Add(-PruneRetention))
	if err != nil {
		if ctx.Err() == nil {
			log.Logger().WithError(err).Error("Failed to prune expired authorizations")
		}
		return
	}
	if count > 0 {
		log.Logger().Debugf("Pruned %d expired authorization(s)", count)
	}
}
