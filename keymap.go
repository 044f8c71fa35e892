package main

type Key = string

type KeyHandler func(key Key) bool

type KeyMap map[Key]KeyHandler

func CreateKeyMap() KeyMap {
	return KeyMap{}
}

func (km KeyMap) HandleKey(key Key) bool {
	if handler, ok := km[key]; ok {
		return handler(key)
	}
	return false
}

func (km KeyMap) Bind(key Key, handler func()) {
	km[key] = func(Key) bool {
		handler()
		return true
	}
}
