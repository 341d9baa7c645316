/*
Package lru implements a fixed-capacity Least Recently Used (LRU) cache.

Every Get and Put marks the entry as most recently used. When a Put of a new key
grows the cache past its capacity, the least recently used entry is evicted
before Put returns, so Len never exceeds Cap.

Entries are kept in an arena-backed doubly linked list bounded by two sentinel
nodes, and a map indexes each key to its node. Lookup, insertion, update,
removal and eviction are all O(1).

The cache is safe for concurrent access. Because Get reorders the list, it
takes the same exclusive lock as Put and Remove.

# Example Usage

## Basic

The following example shows all basic operations of the cache.

	type User struct {
		ID   int
		Name string
	}

	func basicExample() error {
		userCache, err := lru.New[int, User](3)
		if err != nil {
			return err // lru.ErrInvalidCapacity for capacity <= 0
		}

		user := User{ID: 1, Name: "John Doe"}

		// Put the user in the cache.
		userCache.Put(user.ID, user)

		// Get the user from the cache.
		userFromCache, ok := userCache.Get(user.ID)
		if !ok {
			// Not cached.
		}

		fmt.Printf("Got user: %+v\n", userFromCache) // Got user: {ID:1 Name:John Doe}

		// A miss is not an error.
		_, ok = userCache.Get(2) // ok == false

		// Walk the entries, most recently used first.
		for id, u := range userCache.Snapshot() {
			fmt.Println(id, u.Name)
		}

		userCache.Remove(user.ID) // true

		return nil
	}

## Loading

With a getter, Load populates the cache on a miss. Concurrent loads of the same
key wait for a single getter call.

	// This function simulates getting a user from a database or other source.
	func getUser(_ context.Context, id int) (User, error) {
		return User{ID: id, Name: fmt.Sprintf("User %d", id)}, nil
	}

	func loadExample(ctx context.Context) error {
		userCache, err := lru.New(2,
			lru.WithGetter(getUser),
			lru.WithOnEvict(func(id int, _ User) {
				fmt.Printf("evicted user %d\n", id)
			}),
		)
		if err != nil {
			return err
		}

		userCache.Load(ctx, 1) // from the getter
		userCache.Load(ctx, 1) // from the cache
		userCache.Load(ctx, 2) // from the getter
		userCache.Load(ctx, 3) // from the getter, evicts user 1

		return nil
	}

## Configuration

The capacity may be read from the environment:

	cfg, err := lru.LoadConfig("USERS_") // reads USERS_CAPACITY
	if err != nil {
		return err
	}

	userCache, err := lru.NewFromConfig[int, User](cfg, lru.WithLogger[int, User](log))
*/
package lru
