package storage

const schema = `
CREATE TABLE IF NOT EXISTS corporations (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL DEFAULT "",
    ticker TEXT NOT NULL DEFAULT "",
    is_npc BOOL NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS alliances (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL DEFAULT "",
    ticker TEXT NOT NULL DEFAULT ""
);
CREATE TABLE IF NOT EXISTS characters (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL DEFAULT "",
    owner_hash TEXT NOT NULL DEFAULT "",
    active BOOL NOT NULL DEFAULT TRUE,
    shared BOOL NOT NULL DEFAULT FALSE,
    log_location BOOL NOT NULL DEFAULT TRUE,
    faction_id INTEGER,
    faction_name TEXT NOT NULL DEFAULT "",
    corporation_id INTEGER REFERENCES corporations (id) ON DELETE SET NULL,
    alliance_id INTEGER REFERENCES alliances (id) ON DELETE SET NULL,
    last_login_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_characters_corporation_id ON characters (corporation_id);
CREATE INDEX IF NOT EXISTS idx_characters_alliance_id ON characters (alliance_id);
CREATE TABLE IF NOT EXISTS character_tokens (
    character_id INTEGER PRIMARY KEY REFERENCES characters (id) ON DELETE CASCADE,
    access_token TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    issued_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS character_authentications (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    character_id INTEGER NOT NULL REFERENCES characters (id) ON DELETE CASCADE,
    selector TEXT NOT NULL UNIQUE,
    token TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    expires_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_character_authentications_character_id
    ON character_authentications (character_id);
CREATE TABLE IF NOT EXISTS user_characters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    character_id INTEGER NOT NULL UNIQUE REFERENCES characters (id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS character_locations (
    character_id INTEGER PRIMARY KEY REFERENCES characters (id) ON DELETE CASCADE,
    solar_system_id INTEGER NOT NULL,
    solar_system_name TEXT NOT NULL DEFAULT "",
    station_id INTEGER,
    structure_id INTEGER,
    ship_type_id INTEGER,
    updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS maps (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT "",
    scope TEXT NOT NULL,
    active BOOL NOT NULL DEFAULT TRUE,
    created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS character_maps (
    character_id INTEGER NOT NULL REFERENCES characters (id) ON DELETE CASCADE,
    map_id INTEGER NOT NULL REFERENCES maps (id) ON DELETE CASCADE,
    PRIMARY KEY (character_id, map_id)
);
CREATE TABLE IF NOT EXISTS corporation_maps (
    corporation_id INTEGER NOT NULL REFERENCES corporations (id) ON DELETE CASCADE,
    map_id INTEGER NOT NULL REFERENCES maps (id) ON DELETE CASCADE,
    PRIMARY KEY (corporation_id, map_id)
);
CREATE TABLE IF NOT EXISTS alliance_maps (
    alliance_id INTEGER NOT NULL REFERENCES alliances (id) ON DELETE CASCADE,
    map_id INTEGER NOT NULL REFERENCES maps (id) ON DELETE CASCADE,
    PRIMARY KEY (alliance_id, map_id)
);
`
