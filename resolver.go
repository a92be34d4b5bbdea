package newfs

import "strings"

// Lookup walks path, a slash-separated absolute string, against the
// in-memory tree, triggering lazy loads as needed (§4.5). If path is
// exactly "/", it returns the root with found=true, isRoot=true.
// Otherwise it splits on "/" (non-empty tokens only) and walks from the
// root.
//
// At each level: if the current node has no materialized inode, it is
// materialized via ReadInode. If the current node is a regular file and
// more path remains, resolution stops and returns the file's dentry with
// found unchanged -- callers treat this as a structural error, but the
// returned dentry is still useful for diagnostics. If the current node
// is a directory, its children are scanned and the token is matched
// against each child's name by prefix-length comparison of the token's
// length (first match wins; see matchChild's doc comment for why this is
// kept as specified rather than switched to full equality). On miss,
// the parent directory's dentry is returned with found=false. On hit at
// the final level, the child is returned with found=true; on hit before
// the final level, resolution descends into the child and continues.
//
// After resolution, if the returned dentry's inode is not yet
// materialized, it is materialized before returning.
//
// Grounded in original_source/fs/newfs/src/newfs_utils.c's newfs_lookup.
func (fs *FS) Lookup(path string) (dentry *Dentry, found bool, isRoot bool) {
	if path == "/" {
		return fs.root, true, true
	}

	tokens := splitPath(path)
	cursor := fs.root
	var result *Dentry

	for lvl, tok := range tokens {
		if cursor.inode == nil {
			if _, err := fs.ReadInode(cursor, cursor.Ino); err != nil {
				return cursor, false, false
			}
		}
		inode := cursor.inode

		if inode.Type != Dir {
			// A regular file (or, in principle, a symlink -- never
			// materialized, per §1 Non-goals) can't be descended into;
			// since the loop still has tok left to resolve against it,
			// this is always a structural truncation, not only when
			// more than one token remains.
			result = inode.dentry
			break
		}

		child, hit := matchChild(inode, tok)
		if !hit {
			result = inode.dentry
			found = false
			break
		}

		if lvl == len(tokens)-1 {
			result = child
			found = true
			break
		}
		cursor = child
	}

	if result == nil {
		result = cursor
	}

	if result.inode == nil {
		fs.ReadInode(result, result.Ino)
	}
	return result, found, false
}

// splitPath splits an absolute, slash-separated path into its non-empty
// tokens.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// matchChild scans dir's child list for a name matching token, first
// match wins. Name matching uses the token's length as the compare
// length (matchName), which means a token that is a strict prefix of an
// entry's name falsely matches that entry; an entry whose name is
// shorter than the token never matches it. This is
// preserved, deliberately, from the original source (§4.5, §9): §4.5
// documents this exact algorithm as the resolver's designed behavior,
// not as incidental commentary, so it is not "fixed" here.
func matchChild(dir *Inode, token string) (*Dentry, bool) {
	for c := dir.children; c != nil; c = c.sibling {
		if matchName(c.Name, token) {
			return c, true
		}
	}
	return nil, false
}

// matchName compares a candidate directory-entry name against a path
// token using the token's length as the compare length (equivalent to
// the original's memcmp(fname, token, strlen(token))).
func matchName(candidate, token string) bool {
	if len(candidate) < len(token) {
		return false
	}
	return candidate[:len(token)] == token
}
