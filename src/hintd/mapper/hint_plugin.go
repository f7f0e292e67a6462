package mapper

import (
	"fmt"

	hintplugin "github.com/overlaykit/hintd/src/hintd/entity/hint-plugin"
)

// PluginInfoToRuntimePrioritizedMethods maps all PluginInfo from running plugins, into a prioritized list of modules to run per method.
func PluginInfoToRuntimePrioritizedMethods(allPluginInfo []hintplugin.PluginInfo) (hintplugin.RuntimePrioritizedMethods, error) {
	result := make(hintplugin.RuntimePrioritizedMethods)
	methodPriorityBuckets := make(map[string]map[hintplugin.Priority][]*hintplugin.Methods)

	for _, pluginInfo := range allPluginInfo {
		if err := pluginInfo.Validate(); err != nil {
			return nil, fmt.Errorf("error validating plugin configuration: %w", err)
		}

		// Add this plugin to its assigned priority bucket for each method.
		for method, priority := range pluginInfo.Priorities {
			if _, ok := methodPriorityBuckets[method]; !ok {
				methodPriorityBuckets[method] = make(map[hintplugin.Priority][]*hintplugin.Methods)
			}
			methodPriorityBuckets[method][priority] = append(methodPriorityBuckets[method][priority], pluginInfo.Methods)
		}
	}

	// Consolidate the final buckets into two slices (sync and async) ordered for execution.
	for method, buckets := range methodPriorityBuckets {
		for priority := hintplugin.PriorityHigh; priority <= hintplugin.PriorityAsync; priority++ {
			current, ok := result[method]
			if !ok {
				current = hintplugin.MethodLists{}
			}
			if priority < hintplugin.PriorityAsync {
				current.Sync = append(result[method].Sync, buckets[priority]...)
			} else {
				current.Async = append(result[method].Async, buckets[priority]...)
			}
			result[method] = current
		}
	}

	return result, nil
}
