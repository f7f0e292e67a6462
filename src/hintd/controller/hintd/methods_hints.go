package hintddaemon

import (
	"context"
	"fmt"

	"github.com/overlaykit/hintd/src/hintd/entity"
	hintplugin "github.com/overlaykit/hintd/src/hintd/entity/hint-plugin"
	hintdprotocol "github.com/overlaykit/hintd/src/hintd/internal/protocol"
)

// HintsSetup replaces the session's hint configuration, then rebuilds the
// per-session method table so the new trigger binding takes effect.
func (c *controller) HintsSetup(ctx context.Context, params *entity.RawHintOptions) error {
	call := func(ctx context.Context, m *hintplugin.Methods) {
		if err := m.HintsSetup(ctx, params); err != nil {
			c.logger.Errorf(_errPluginReturnedError, m.PluginNameKey, err)
		}
	}
	if err := c.executePluginMethods(ctx, hintdprotocol.MethodHintsSetup, call, call); err != nil {
		return fmt.Errorf(_errBadPluginCall, err)
	}

	if err := c.registerSessionPlugins(ctx); err != nil {
		return fmt.Errorf("registering session plugins: %w", err)
	}
	return nil
}

func (c *controller) HintsShow(ctx context.Context) error {
	call := func(ctx context.Context, m *hintplugin.Methods) {
		if err := m.HintsShow(ctx); err != nil {
			c.logger.Errorf(_errPluginReturnedError, m.PluginNameKey, err)
		}
	}
	return c.executePluginMethods(ctx, hintdprotocol.MethodHintsShow, call, call)
}

func (c *controller) HintsHide(ctx context.Context) error {
	call := func(ctx context.Context, m *hintplugin.Methods) {
		if err := m.HintsHide(ctx); err != nil {
			c.logger.Errorf(_errPluginReturnedError, m.PluginNameKey, err)
		}
	}
	return c.executePluginMethods(ctx, hintdprotocol.MethodHintsHide, call, call)
}

func (c *controller) HintsToggle(ctx context.Context) error {
	call := func(ctx context.Context, m *hintplugin.Methods) {
		if err := m.HintsToggle(ctx); err != nil {
			c.logger.Errorf(_errPluginReturnedError, m.PluginNameKey, err)
		}
	}
	return c.executePluginMethods(ctx, hintdprotocol.MethodHintsToggle, call, call)
}
