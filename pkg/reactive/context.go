package reactive

// SetContext sets a context value on the rendering component's scope.
// The value is visible to the component and all of its descendants.
func SetContext(key, value any) {
	o := renderingOwner("SetContext")
	o.TrackHook(HookContext)
	o.SetValue(key, value)
}

// GetContext retrieves a context value from the nearest provider in the
// hierarchy of the rendering component. Returns nil if no value is found.
func GetContext(key any) any {
	o := renderingOwner("GetContext")
	o.TrackHook(HookContext)
	return o.GetValue(key)
}

// SetValue sets a value on this Owner.
func (o *Owner) SetValue(key, value any) {
	o.valuesMu.Lock()
	defer o.valuesMu.Unlock()

	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// GetValue retrieves a value from this Owner or its parents.
func (o *Owner) GetValue(key any) any {
	o.valuesMu.RLock()
	if val, ok := o.values[key]; ok {
		o.valuesMu.RUnlock()
		return val
	}
	o.valuesMu.RUnlock()

	if o.parent != nil {
		return o.parent.GetValue(key)
	}
	return nil
}
